package formstate

func scalar(name string) Field { return Field{Name: name, Kind: Scalar} }

func number(name string, def float64) Field {
	return Field{Name: name, Kind: Scalar, Default: def}
}

func list(name string) Field { return Field{Name: name, Kind: List} }

// seededList starts with one blank item so the page renders an input.
func seededList(name string) Field {
	return Field{Name: name, Kind: List, Default: []any{""}}
}

func group(name string, fields ...Field) Field {
	return Field{Name: name, Kind: Group, Entry: &Shape{Name: name, Fields: fields}}
}

func entries(name string, fields ...Field) Field {
	return Field{Name: name, Kind: EntryList, Entry: &Shape{Name: name, Fields: fields}}
}

// ResumeShape is the jobseeker resume.
var ResumeShape = &Shape{
	Name: "resume",
	Fields: []Field{
		scalar("picture"),
		scalar("summary"),
		scalar("firstName"),
		scalar("lastName"),
		scalar("phoneNumber"),
		scalar("emailAddress"),
		scalar("linkedInProfile"),
		scalar("address"),
		list("skills"),
		list("hobbies"),
		entries("workExperience",
			scalar("companyName"),
			scalar("jobTitle"),
			scalar("startDate"),
			scalar("endDate"),
			list("responsibilities"),
		),
		entries("education",
			scalar("institutionName"),
			scalar("degreeEarned"),
			scalar("startDate"),
			scalar("graduationDate"),
			list("academicAchievements"),
		),
		list("certifications"),
		entries("projects",
			scalar("projectName"),
			scalar("role"),
			scalar("projectObjective"),
			list("outcomes"),
		),
		list("awardsAndHonors"),
		list("languages"),
	},
}

// JobPostingShape is the employer job posting.
var JobPostingShape = &Shape{
	Name: "job",
	Fields: []Field{
		scalar("title"),
		scalar("description"),
		scalar("location"),
		scalar("salary"),
		seededList("skills"),
		seededList("qualificationHighest"),
		number("experienceYears", 0),
		number("requireEmployee", 1),
		{Name: "jobType", Kind: Scalar, Default: "Full-Time"},
		scalar("deadline"),
		scalar("aboutJob"),
		seededList("responsibilities"),
		seededList("preferredQualifications"),
		seededList("additionalInformation"),
		scalar("howToApply"),
		scalar("note"),
	},
}

// CompanyProfileShape is the employer company profile.
var CompanyProfileShape = &Shape{
	Name: "company",
	Fields: []Field{
		scalar("name"),
		scalar("description"),
		scalar("industry"),
		scalar("website"),
		scalar("email"),
		scalar("phone"),
		group("headquarters", scalar("country"), scalar("city")),
		scalar("size"),
		number("foundedYear", 0),
		scalar("mission"),
		scalar("vision"),
		seededList("values"),
		seededList("specialties"),
		group("socialMedia",
			scalar("linkedin"),
			scalar("twitter"),
			scalar("facebook"),
			scalar("instagram"),
		),
		scalar("picture"),
		seededList("positions"),
	},
}

// BlogShape is an admin blog post.
var BlogShape = &Shape{
	Name: "blog",
	Fields: []Field{
		scalar("title"),
		scalar("picture"),
		scalar("content"),
		list("tags"),
	},
}

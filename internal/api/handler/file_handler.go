package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
)

const uploadField = "pdfFile"

// FileHandler proxies resume documents between the browser and the backend.
type FileHandler struct {
	files ports.FileService
}

func NewFileHandler(files ports.FileService) *FileHandler {
	return &FileHandler{files: files}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// UploadResume forwards a resume PDF.
//
// @Summary      Upload a resume PDF
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        pdfFile  formData  file  true  "PDF document"
// @Success      200      {object}  Page
// @Failure      400      {object}  ErrorResponse
// @Router       /dashboard/resume/upload [post]
func (h *FileHandler) UploadResume(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	fh, err := c.FormFile(uploadField)
	if err != nil {
		return fmt.Errorf("%w: missing %s", domain.ErrInvalidUpload, uploadField)
	}
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidUpload, err)
	}
	defer f.Close()

	url, err := h.files.UploadResume(c.Request().Context(), sess, fh.Filename, fh.Header.Get(echo.HeaderContentType), fh.Size, f)
	if err != nil {
		return err
	}
	return render(c, "resume-upload", uploadResponse{URL: url}, success("Resume uploaded successfully"))
}

// Document streams a stored document for inline preview.
//
// @Summary      Fetch a resume PDF
// @Tags         files
// @Produce      application/pdf
// @Param        filename  path  string  true  "Stored file name"
// @Success      200
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /dashboard/resume/pdf/{filename} [get]
// @Router       /employer-dashboard/resume/pdf/{filename} [get]
// @Router       /admin/resume/pdf/{filename} [get]
func (h *FileHandler) Document(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	doc, err := h.files.Document(c.Request().Context(), sess, c.Param("filename"))
	if err != nil {
		return err
	}
	defer doc.Body.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, "inline")
	if doc.Size > 0 {
		c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(doc.Size, 10))
	}
	return c.Stream(http.StatusOK, doc.ContentType, doc.Body)
}

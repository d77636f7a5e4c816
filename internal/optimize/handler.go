package optimize

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cv-optimizer-backend/internal/shared/server/respond"
)

const maxUploadSize = 16 << 20 // 16MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the optimization routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/optimize", h.optimize)
	rg.POST("/documents/extract", h.extractDocument)
}

type optimizeResponse struct {
	Success    bool   `json:"success"`
	ResumeES   string `json:"cv_es"`
	ResumeEN   string `json:"cv_en"`
	FilenameES string `json:"es_filename"`
	FilenameEN string `json:"en_filename"`
	Vacancy    any    `json:"vacancy_data"`
}

func (h *Handler) optimize(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	req := Request{
		ResumeText: c.PostForm("cv_text"),
		VacancyURL: c.PostForm("vacancy_url"),
	}

	if fileHeader, err := c.FormFile("file"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, string(KindMissingInput), "unable to read uploaded file")
			return
		}
		defer file.Close()
		req.File = file
		req.FileName = fileHeader.Filename
	}

	result, err := h.Svc.Submit(c.Request.Context(), req)
	if err != nil {
		respondPipelineError(c, err)
		return
	}

	respond.OK(c, optimizeResponse{
		Success:    true,
		ResumeES:   result.ResumeES,
		ResumeEN:   result.ResumeEN,
		FilenameES: result.FilenameES,
		FilenameEN: result.FilenameEN,
		Vacancy:    result.Vacancy,
	})
}

func (h *Handler) extractDocument(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, string(KindMissingInput), "file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, string(KindMissingInput), "unable to read uploaded file")
		return
	}
	defer file.Close()

	text, err := h.Svc.ExtractText(fileHeader.Filename, file)
	if err != nil {
		respondPipelineError(c, err)
		return
	}

	respond.OK(c, gin.H{"text": text})
}

func respondPipelineError(c *gin.Context, err error) {
	var pipelineErr *Error
	if !errors.As(err, &pipelineErr) {
		respond.Error(c, http.StatusInternalServerError, string(KindInternalError), "unexpected error")
		return
	}
	respond.Error(c, statusForKind(pipelineErr.Kind), string(pipelineErr.Kind), pipelineErr.Message)
}

func statusForKind(kind Kind) int {
	switch kind {
	case KindMissingInput, KindUnsupportedFormat:
		return http.StatusBadRequest
	case KindExtractionFailed:
		return http.StatusUnprocessableEntity
	case KindScrapeFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

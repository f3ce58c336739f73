package handlers

import (
	"careconnect/services"
	"io"

	"github.com/gin-gonic/gin"
)

// Uploads beyond this are rejected before touching the parser.
const maxReportUploadBytes = 32 << 20

type LabReportHandler struct {
	Reports  *services.LabReportService
	Patients *services.PatientService
}

func NewLabReportHandler(reports *services.LabReportService, patients *services.PatientService) *LabReportHandler {
	return &LabReportHandler{Reports: reports, Patients: patients}
}

// Upload forwards the submitted PDFs to the parsing service and stores
// the aggregate result on the caller's profile. A file that fails to
// parse is reported by name without failing the batch.
func (h *LabReportHandler) Upload(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(400, gin.H{"error": "multipart form with report files is required"})
		return
	}

	fileHeaders := form.File["reports"]
	if len(fileHeaders) == 0 {
		fileHeaders = form.File["file"]
	}
	if len(fileHeaders) == 0 {
		respondError(c, services.ErrMissingFields)
		return
	}

	var total int64
	files := make([]services.ReportFile, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		total += header.Size
		if total > maxReportUploadBytes {
			c.JSON(400, gin.H{"error": "upload too large"})
			return
		}

		f, err := header.Open()
		if err != nil {
			c.JSON(400, gin.H{"error": "failed to read uploaded file"})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(400, gin.H{"error": "failed to read uploaded file"})
			return
		}
		files = append(files, services.ReportFile{Name: header.Filename, Data: data})
	}

	ctx := c.Request.Context()
	patient, err := h.Patients.GetByUserID(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.Reports.ProcessReports(ctx, patient.ID, files)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, result)
}

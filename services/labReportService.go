package services

import (
	"bytes"
	"careconnect/repositories"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ReportFile is one uploaded PDF to forward to the external parser.
type ReportFile struct {
	Name string
	Data []byte
}

// ReportDownload pairs an uploaded filename with the parser's rendered
// download URL, when one is returned.
type ReportDownload struct {
	Filename    string `json:"filename"`
	DownloadURL string `json:"download_url"`
}

// LabResult is the aggregate stored verbatim on the patient record. The
// parsed entries are opaque to us; we never interpret them.
type LabResult struct {
	ParsedJSON      []json.RawMessage `json:"parsed_json"`
	DownloadURLs    []ReportDownload  `json:"pdf_download_urls"`
	ProcessedAt     string            `json:"processed_at"`
	TotalFiles      int               `json:"total_files_processed"`
	ParsedReports   int               `json:"parsed_reports"`
	FailedFilenames []string          `json:"failed_files,omitempty"`
}

// parseResponse is the external parser's reply for a single file.
type parseResponse struct {
	ParsedJSON     []json.RawMessage `json:"parsed_json"`
	PDFDownloadURL string            `json:"pdf_download_url"`
}

type LabReportService struct {
	baseURL  string
	client   *http.Client
	patients repositories.PatientRepository
}

func NewLabReportService(baseURL string, patients repositories.PatientRepository) *LabReportService {
	return &LabReportService{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: 60 * time.Second},
		patients: patients,
	}
}

// ProcessReports forwards each PDF to the external AI parser and stores the
// aggregate result on the patient. One file's failure never aborts the
// batch; it is recorded and the rest proceed.
func (s *LabReportService) ProcessReports(ctx context.Context, patientID string, files []ReportFile) (*LabResult, error) {
	if patientID == "" {
		return nil, ErrNotAuthenticated
	}
	if len(files) == 0 {
		return nil, ErrMissingFields
	}

	patient, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrNotFound
	}

	result := &LabResult{
		ProcessedAt: time.Now().UTC().Format(time.RFC3339),
		TotalFiles:  len(files),
	}
	for _, file := range files {
		parsed, err := s.parseOne(ctx, file)
		if err != nil {
			log.Printf("Failed to parse lab report %q: %v", file.Name, err)
			result.FailedFilenames = append(result.FailedFilenames, file.Name)
			continue
		}
		result.ParsedJSON = append(result.ParsedJSON, parsed.ParsedJSON...)
		if parsed.PDFDownloadURL != "" {
			result.DownloadURLs = append(result.DownloadURLs, ReportDownload{
				Filename:    file.Name,
				DownloadURL: parsed.PDFDownloadURL,
			})
		}
	}
	result.ParsedReports = len(result.ParsedJSON)

	labJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lab result: %w", err)
	}
	if err := s.patients.SaveLabJSON(ctx, patientID, string(labJSON)); err != nil {
		return nil, err
	}

	return result, nil
}

// parseOne uploads a single PDF to the parser's /parse_report/ endpoint.
func (s *LabReportService) parseOne(ctx context.Context, file ReportFile) (*parseResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, fmt.Errorf("failed to write upload body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/parse_report/", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("parser request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("parser returned %d: %s", resp.StatusCode, string(msg))
	}

	var parsed parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode parser response: %w", err)
	}
	return &parsed, nil
}

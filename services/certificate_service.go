// File: /services/certificate_service.go
package services

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/ChakradarReddy/event-management/models"
	"github.com/ChakradarReddy/event-management/storage"
	"github.com/go-pdf/fpdf"
)

// CertificateData is the artifact contract: every renderer embeds exactly
// these fields, whatever the output format.
type CertificateData struct {
	CertificateNumber string
	ParticipantName   string
	EventTitle        string
	EventType         string
	EventDate         string
	EventVenue        string
	IssueDate         string
}

// CertificateRenderer produces a certificate document from CertificateData.
// Two implementations exist: the PDF renderer and a plain-text fallback for
// deployments where PDF rendering is not wanted.
type CertificateRenderer interface {
	Render(data CertificateData) ([]byte, error)
	Extension() string
	ContentType() string
}

// NewRenderer selects a renderer by configured format. Anything other than
// "pdf" gets the plain-text fallback.
func NewRenderer(format string) CertificateRenderer {
	if format == "pdf" {
		return &PDFRenderer{}
	}
	return &TextRenderer{}
}

// PDFRenderer renders a landscape A4 participation certificate.
type PDFRenderer struct{}

func (r *PDFRenderer) Render(data CertificateData) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 30)
	pdf.CellFormat(0, 30, "CERTIFICATE OF PARTICIPATION", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 12, "This is to certify that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 16, data.ParticipantName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 12, fmt.Sprintf("has participated in the %s", data.EventType), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 14, data.EventTitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 10, fmt.Sprintf("held on %s at %s", data.EventDate, data.EventVenue), "", 1, "C", false, 0, "")
	pdf.Ln(8)
	pdf.CellFormat(0, 8, fmt.Sprintf("Certificate No: %s", data.CertificateNumber), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Issued on: %s", data.IssueDate), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) Extension() string   { return "pdf" }
func (r *PDFRenderer) ContentType() string { return "application/pdf" }

// TextRenderer writes the same certificate fields as a plain-text document.
type TextRenderer struct{}

func (r *TextRenderer) Render(data CertificateData) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "CERTIFICATE OF PARTICIPATION\n")
	fmt.Fprintf(&buf, "Certificate No: %s\n", data.CertificateNumber)
	fmt.Fprintf(&buf, "Participant: %s\n", data.ParticipantName)
	fmt.Fprintf(&buf, "Event: %s\n", data.EventTitle)
	fmt.Fprintf(&buf, "Type: %s\n", data.EventType)
	fmt.Fprintf(&buf, "Date: %s\n", data.EventDate)
	fmt.Fprintf(&buf, "Venue: %s\n", data.EventVenue)
	fmt.Fprintf(&buf, "Issued on: %s\n", data.IssueDate)
	return buf.Bytes(), nil
}

func (r *TextRenderer) Extension() string   { return "txt" }
func (r *TextRenderer) ContentType() string { return "text/plain" }

// CertificateService renders certificate artifacts and writes them to durable
// storage. It never touches the database; recording the artifact reference is
// the caller's job, and only after Generate returns successfully.
type CertificateService struct {
	renderer CertificateRenderer
	store    storage.Storage
}

func NewCertificateService(renderer CertificateRenderer, store storage.Storage) *CertificateService {
	return &CertificateService{renderer: renderer, store: store}
}

// Generate renders and durably stores the certificate for a registration,
// returning the storage key. The registration must have User and Event loaded.
func (s *CertificateService) Generate(ctx context.Context, registration *models.Registration) (string, error) {
	data := CertificateData{
		CertificateNumber: registration.CertificateNumber(),
		ParticipantName:   registration.User.FullName,
		EventTitle:        registration.Event.Title,
		EventType:         string(registration.Event.EventType),
		EventDate:         registration.Event.StartDate.Format("January 2, 2006"),
		EventVenue:        registration.Event.Venue,
		IssueDate:         time.Now().Format("January 2, 2006"),
	}

	content, err := s.renderer.Render(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrCertificateGeneration, err)
	}

	key := fmt.Sprintf("certificate_%s_%s.%s", registration.ID, randomSuffix(), s.renderer.Extension())

	if err := s.store.Put(ctx, key, content, s.renderer.ContentType()); err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrCertificateGeneration, err)
	}

	return key, nil
}

// Fetch returns the stored artifact bytes for a registration.
func (s *CertificateService) Fetch(ctx context.Context, key string) ([]byte, error) {
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, models.ErrCertificateArtifactMissing
		}
		return nil, err
	}
	return data, nil
}

// ContentType reports the media type of artifacts this service produces.
func (s *CertificateService) ContentType() string {
	return s.renderer.ContentType()
}

func randomSuffix() string {
	b := make([]byte, 4)
	rand.Read(b)
	return hex.EncodeToString(b)
}

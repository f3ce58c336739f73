package utils

import (
	"bytes"
	"careconnect/models"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// GenerateReceiptPDF renders the payment receipt attached to the booking
// confirmation email.
func GenerateReceiptPDF(appointment *models.Appointment, doctor *models.Doctor, patient *models.Patient) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(13, 71, 161)
	pdf.CellFormat(0, 10, "CareConnect - Appointment Receipt", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "Appointment", "1", 1, "C", false, 0, "")
	addReceiptRow(pdf, "Appointment ID", fmt.Sprintf("%d", appointment.ID), true)
	addReceiptRow(pdf, "Doctor", doctor.Name, true)
	addReceiptRow(pdf, "Specialization", doctor.Specialization, true)
	addReceiptRow(pdf, "Patient", patient.Name, true)
	addReceiptRow(pdf, "Date", appointment.SlotDate, true)
	addReceiptRow(pdf, "Time Slot", appointment.Slot, true)
	addReceiptRow(pdf, "Status", appointment.Status, true)

	pdf.CellFormat(0, 10, "Payment", "1", 1, "C", false, 0, "")
	addReceiptRow(pdf, "Payment ID", appointment.PaymentID, false)
	addReceiptRow(pdf, "Consultation Fee", fmt.Sprintf("INR %.2f", doctor.ConsultationFee), false)
	pdf.SetFont("Arial", "B", 13)
	addReceiptRow(pdf, "Amount Paid", fmt.Sprintf("INR %.2f", doctor.ConsultationFee), true)

	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, "Thank you for booking with CareConnect. Quote the payment ID above in any support request.", "", "L", false)

	pdf.SetY(pdf.GetY() + 12)
	pdf.CellFormat(0, 10, "This is a computer generated receipt", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// addReceiptRow adds a label/value line to the receipt.
func addReceiptRow(pdf *gofpdf.Fpdf, label, value string, isHeader bool) {
	if isHeader {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(255, 255, 255)
	} else {
		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(240, 240, 240)
	}
	pdf.CellFormat(45, 10, label, "1", 0, "", false, 0, "")
	pdf.CellFormat(0, 10, value, "1", 1, "", false, 0, "")
}

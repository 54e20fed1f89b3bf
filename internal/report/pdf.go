package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/DukeRupert/carecrm/internal/domain"
)

// =============================================================================
// PDF Generator
// =============================================================================

// PDFGenerator generates PDF medication reports.
type PDFGenerator struct {
	// Page dimensions (A4 in mm)
	pageWidth  float64
	pageHeight float64
	margin     float64

	// Content area
	contentWidth float64
}

// NewPDFGenerator creates a new PDF generator with default settings.
func NewPDFGenerator() *PDFGenerator {
	margin := 15.0
	pageWidth := 210.0 // A4 width in mm
	return &PDFGenerator{
		pageWidth:    pageWidth,
		pageHeight:   297.0, // A4 height in mm
		margin:       margin,
		contentWidth: pageWidth - (2 * margin),
	}
}

// Format returns the output format of this generator.
func (g *PDFGenerator) Format() domain.ReportFormat {
	return domain.ReportFormatPDF
}

// pdfDoc bundles the fpdf document with its text translator. The core
// fonts are cp1252, so UTF-8 names must be translated before output.
type pdfDoc struct {
	*fpdf.Fpdf
	tr func(string) string
}

func (d *pdfDoc) text(w, h float64, s string) {
	d.Cell(w, h, d.tr(s))
}

// Generate creates a PDF report and writes it to the provided writer.
func (g *PDFGenerator) Generate(ctx context.Context, doc *Document, w io.Writer) (int64, error) {
	if doc == nil || doc.Report == nil {
		return 0, fmt.Errorf("pdf generation error: no report")
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	data := doc.Report
	f := fpdf.New("P", "mm", "A4", "")
	pdf := &pdfDoc{Fpdf: f, tr: f.UnicodeTranslatorFromDescriptor("")}

	name := data.Customer.DisplayName()
	pdf.SetTitle("Medication report - "+name, true)
	pdf.SetCreator("carecrm", true)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetFooterFunc(func() {
		g.addFooter(pdf, data)
	})

	pdf.AddPage()
	g.addHeader(pdf, data, doc.Photo)
	g.addCustomerDetails(pdf, data)
	g.addSummary(pdf, data)
	g.addAdministrations(pdf, data)

	if err := pdf.Error(); err != nil {
		return 0, fmt.Errorf("pdf generation error: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return 0, fmt.Errorf("pdf output error: %w", err)
	}

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// =============================================================================
// Header
// =============================================================================

func (g *PDFGenerator) addHeader(pdf *pdfDoc, data *domain.MedicationReport, photo *ImageData) {
	r, gr, b := HexToRGB(BrandColors.Primary)
	pdf.SetFillColor(r, gr, b)
	pdf.Rect(0, 0, g.pageWidth, 45, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(g.margin, 12)
	pdf.text(0, 10, "Medication Administration Record")

	pdf.SetFont("Helvetica", "", 13)
	pdf.SetXY(g.margin, 26)
	pdf.text(0, 8, data.Customer.DisplayName())

	if photo != nil && len(photo.Data) > 0 {
		opts := fpdf.ImageOptions{ImageType: imageType(photo.ContentType), ReadDpi: false}
		pdf.RegisterImageOptionsReader("customer-photo", opts, bytes.NewReader(photo.Data))
		pdf.ImageOptions("customer-photo", g.pageWidth-g.margin-30, 7.5, 30, 30, false, opts, 0, "")
	}

	r, gr, b = HexToRGB(BrandColors.TextDark)
	pdf.SetTextColor(r, gr, b)
	pdf.SetXY(g.margin, 55)
}

func imageType(contentType string) string {
	if contentType == "image/png" {
		return "PNG"
	}
	return "JPG"
}

// =============================================================================
// Customer Details
// =============================================================================

func (g *PDFGenerator) addCustomerDetails(pdf *pdfDoc, data *domain.MedicationReport) {
	g.addSectionHeader(pdf, "Customer")

	c := data.Customer
	g.addLabelValue(pdf, "Name", c.FirstName+" "+c.LastName)
	g.addLabelValue(pdf, "Room", c.Room)
	g.addLabelValue(pdf, "Care level", c.CareLevel.Label())
	if c.DateOfBirth != nil {
		dob := FormatDate(*c.DateOfBirth)
		if age := c.AgeOn(data.Period.From); age >= 0 {
			dob += " (" + strconv.Itoa(age) + ")"
		}
		g.addLabelValue(pdf, "Date of birth", dob)
	}
	g.addLabelValue(pdf, "Period", FormatPeriod(data.Period))

	if len(c.Allergies) > 0 {
		r, gr, b := HexToRGB(StatusColors[domain.AdministrationRefused])
		pdf.SetTextColor(r, gr, b)
		g.addLabelValue(pdf, "Allergies", strings.Join(c.Allergies, ", "))
		r, gr, b = HexToRGB(BrandColors.TextDark)
		pdf.SetTextColor(r, gr, b)
	}
	pdf.Ln(6)
}

// =============================================================================
// Summary
// =============================================================================

func (g *PDFGenerator) addSummary(pdf *pdfDoc, data *domain.MedicationReport) {
	g.addSectionHeader(pdf, "Summary")

	s := data.Summary()
	rows := []struct {
		status domain.AdministrationStatus
		count  int
	}{
		{domain.AdministrationGiven, s.Given},
		{domain.AdministrationRefused, s.Refused},
		{domain.AdministrationOmitted, s.Omitted},
		{domain.AdministrationWithheld, s.Withheld},
		{domain.AdministrationPending, s.Pending},
	}

	r, gr, b := HexToRGB(BrandColors.Background)
	pdf.SetFillColor(r, gr, b)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(80, 8, "Status", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Count", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		if row.count == 0 {
			continue
		}
		r, gr, b := HexToRGB(StatusColor(row.status))
		pdf.SetFillColor(r, gr, b)
		pdf.CellFormat(5, 8, "", "1", 0, "C", true, 0, "")
		pdf.CellFormat(75, 8, StatusLabel(row.status), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, strconv.Itoa(row.count), "1", 1, "C", false, 0, "")
	}

	r, gr, b = HexToRGB(BrandColors.Background)
	pdf.SetFillColor(r, gr, b)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(80, 8, "Total", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, strconv.Itoa(s.Total), "1", 1, "C", true, 0, "")
	pdf.Ln(8)
}

// =============================================================================
// Administrations
// =============================================================================

var administrationColumns = []struct {
	title string
	width float64
}{
	{"Time", 24},
	{"Medication", 40},
	{"Dose", 20},
	{"Route", 18},
	{"Status", 22},
	{"Given by", 26},
	{"Notes", 30},
}

func (g *PDFGenerator) addAdministrations(pdf *pdfDoc, data *domain.MedicationReport) {
	g.addSectionHeader(pdf, "Administrations")

	if len(data.Administrations) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.text(0, 8, "No medication rounds were scheduled for this period.")
		pdf.Ln(8)
		return
	}

	multiDay := data.Period.Days() > 1
	g.addTableHeader(pdf)

	pdf.SetFont("Helvetica", "", 9)
	for _, a := range data.Administrations {
		if pdf.GetY() > g.pageHeight-30 {
			pdf.AddPage()
			g.addTableHeader(pdf)
			pdf.SetFont("Helvetica", "", 9)
		}

		when := a.ScheduledAt.Format("15:04")
		if multiDay {
			when = a.ScheduledAt.Format("02 Jan 15:04")
		}
		cells := []string{
			when,
			TruncateText(a.MedicationName, 24),
			a.DoseLabel(),
			a.Route,
			StatusLabel(a.Status),
			TruncateText(a.AdministeredBy, 16),
			TruncateText(a.Notes, 18),
		}
		for i, col := range administrationColumns {
			if i == 4 {
				r, gr, b := HexToRGB(StatusColor(a.Status))
				pdf.SetTextColor(r, gr, b)
			}
			ln := 0
			if i == len(administrationColumns)-1 {
				ln = 1
			}
			pdf.CellFormat(col.width, 7, pdf.tr(cells[i]), "B", ln, "L", false, 0, "")
			if i == 4 {
				r, gr, b := HexToRGB(BrandColors.TextDark)
				pdf.SetTextColor(r, gr, b)
			}
		}
	}
}

func (g *PDFGenerator) addTableHeader(pdf *pdfDoc) {
	r, gr, b := HexToRGB(BrandColors.Background)
	pdf.SetFillColor(r, gr, b)
	pdf.SetFont("Helvetica", "B", 9)
	for i, col := range administrationColumns {
		ln := 0
		if i == len(administrationColumns)-1 {
			ln = 1
		}
		pdf.CellFormat(col.width, 8, col.title, "1", ln, "L", true, 0, "")
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func (g *PDFGenerator) addSectionHeader(pdf *pdfDoc, title string) {
	r, gr, b := HexToRGB(BrandColors.Primary)
	pdf.SetDrawColor(r, gr, b)
	pdf.SetLineWidth(0.5)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(r, gr, b)
	pdf.text(0, 8, title)
	pdf.Ln(9)

	pdf.Line(g.margin, pdf.GetY(), g.pageWidth-g.margin, pdf.GetY())
	pdf.Ln(4)

	r, gr, b = HexToRGB(BrandColors.TextDark)
	pdf.SetTextColor(r, gr, b)
	r, gr, b = HexToRGB(BrandColors.Border)
	pdf.SetDrawColor(r, gr, b)
	pdf.SetLineWidth(0.2)
}

func (g *PDFGenerator) addLabelValue(pdf *pdfDoc, label, value string) {
	if value == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.text(40, 6, label+":")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(g.contentWidth-40, 6, pdf.tr(value), "", "L", false)
}

func (g *PDFGenerator) addFooter(pdf *pdfDoc, data *domain.MedicationReport) {
	pdf.SetY(-15)

	r, gr, b := HexToRGB(BrandColors.Border)
	pdf.SetDrawColor(r, gr, b)
	pdf.Line(g.margin, pdf.GetY()-3, g.pageWidth-g.margin, pdf.GetY()-3)

	r, gr, b = HexToRGB(BrandColors.TextMuted)
	pdf.SetTextColor(r, gr, b)
	pdf.SetFont("Helvetica", "", 8)

	pdf.text(0, 10, "Generated: "+FormatDateTime(data.GeneratedAt))

	pdf.SetX(-g.margin - 30)
	pdf.CellFormat(30, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
}

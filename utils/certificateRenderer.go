package utils

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"learnhub/config"

	"github.com/fogleman/gg"
	"github.com/go-resty/resty/v2"
)

// CertificateData is everything printed on a certificate.
type CertificateData struct {
	LearnerName       string    `json:"learner_name"`
	CourseTitle       string    `json:"course_title"`
	CompletedAt       time.Time `json:"completed_at"`
	CertificateNumber string    `json:"certificate_number"`
}

var certificateTemplate = template.Must(template.New("certificate").Parse(`<html>
<head>
<meta charset="utf-8" />
<style>
@page { size: A4 landscape; margin: 0; }
body { font-family: sans-serif; margin: 0; background: #f3f4f6; }
.certificate { width: 297mm; height: 210mm; position: relative; background: white; text-align: center; }
.border { position: absolute; top: 5mm; left: 5mm; right: 5mm; bottom: 5mm; border: 4px solid #f59e0b; border-radius: 8px; }
h1 { padding-top: 40mm; font-size: 42px; color: #1f2937; }
.name { font-size: 36px; font-weight: bold; color: #b45309; margin: 12mm 0; }
.course { font-size: 24px; color: #1f2937; }
.meta { position: absolute; bottom: 20mm; width: 100%; font-size: 14px; color: #6b7280; }
</style>
</head>
<body>
<div class="certificate">
<div class="border"></div>
<h1>Certificate of Completion</h1>
<p>This certifies that</p>
<p class="name">{{.LearnerName}}</p>
<p>has successfully completed</p>
<p class="course">{{.CourseTitle}}</p>
<div class="meta">Completed on {{.CompletedAt.Format "2 January 2006"}} &middot; {{.CertificateNumber}}</div>
</div>
</body>
</html>`))

// CertificateHTML renders the printable certificate page.
func CertificateHTML(data CertificateData) (string, error) {
	var buf bytes.Buffer
	if err := certificateTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderCertificateImage returns the certificate as a PNG. With CERT_RENDER_URL set the HTML page
// is posted to the external renderer, otherwise it is drawn in-process.
func RenderCertificateImage(ctx context.Context, data CertificateData) ([]byte, error) {
	cfg := config.AppConfig
	if cfg == nil || cfg.CertRenderURL == "" {
		fontPath := ""
		if cfg != nil {
			fontPath = cfg.CertFontPath
		}
		return drawCertificate(data, fontPath)
	}

	html, err := CertificateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("certificate template: %w", err)
	}

	client := resty.New().SetTimeout(time.Duration(cfg.CertRenderTimeout) * time.Second)
	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Accept", "image/png").
		SetBody(map[string]interface{}{
			"html":   html,
			"width":  certWidth,
			"height": certHeight,
			"format": "png",
		}).
		Post(cfg.CertRenderURL)
	if err != nil {
		return nil, fmt.Errorf("certificate renderer: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("certificate renderer: status %d: %s", resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}

const (
	certWidth  = 1123
	certHeight = 794
)

// drawCertificate lays out the same content as the HTML page on an A4 landscape canvas.
func drawCertificate(data CertificateData, fontPath string) ([]byte, error) {
	dc := gg.NewContext(certWidth, certHeight)

	dc.SetHexColor("#ffffff")
	dc.Clear()

	dc.SetHexColor("#f59e0b")
	dc.SetLineWidth(6)
	dc.DrawRoundedRectangle(20, 20, certWidth-40, certHeight-40, 8)
	dc.Stroke()

	cx := float64(certWidth) / 2
	lines := []struct {
		text  string
		y     float64
		size  float64
		color string
	}{
		{"Certificate of Completion", 200, 42, "#1f2937"},
		{"This certifies that", 290, 20, "#4b5563"},
		{data.LearnerName, 370, 36, "#b45309"},
		{"has successfully completed", 440, 20, "#4b5563"},
		{data.CourseTitle, 510, 26, "#1f2937"},
		{fmt.Sprintf("Completed on %s  |  %s", data.CompletedAt.Format("2 January 2006"), data.CertificateNumber), 700, 14, "#6b7280"},
	}

	for _, l := range lines {
		if fontPath != "" {
			if err := dc.LoadFontFace(fontPath, l.size); err != nil {
				return nil, fmt.Errorf("certificate font: %w", err)
			}
		}
		dc.SetHexColor(l.color)
		dc.DrawStringAnchored(l.text, cx, l.y, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

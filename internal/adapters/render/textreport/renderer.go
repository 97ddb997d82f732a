// Package textreport es un ReportRenderer en texto plano. Sirve mientras no
// haya un servicio de PDF conectado.
package textreport

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"vet-clinic/internal/ports/render"
)

const tmpl = `REPORTE MÉDICO {{.Report.ID}}
Fecha: {{.Report.Date.Format "2006-01-02"}}

Mascota: {{.Pet.Name}} ({{.Pet.Species}}{{if .Pet.Breed}}, {{.Pet.Breed}}{{end}})
Dueño:   {{.Owner.Name}} <{{.Owner.Email}}>
Doctor:  {{if .DoctorUser.Name}}{{.DoctorUser.Name}}{{else}}(sin datos){{end}}{{if .Doctor.Specialization}} - {{.Doctor.Specialization}}{{end}}

Resumen:
{{.Report.Summary}}
{{- if .Report.Diagnosis}}

Diagnóstico:
{{.Report.Diagnosis}}
{{- end}}
{{- if .Report.Prescription}}

Prescripción:
{{.Report.Prescription}}
{{- end}}
{{- if .Report.Medications}}

Medicación:
{{- range .Report.Medications}}
- {{.Name}} {{.Dosage}} {{.Frequency}} {{.Duration}}
{{- end}}
{{- end}}
{{- if .Report.Recommendations}}

Recomendaciones:
{{- range .Report.Recommendations}}
- {{.}}
{{- end}}
{{- end}}
{{- if .Report.Notes}}

Notas:
{{.Report.Notes}}
{{- end}}
`

type Renderer struct {
	t *template.Template
}

var _ render.ReportRenderer = (*Renderer)(nil)

func New() *Renderer {
	return &Renderer{t: template.Must(template.New("report").Parse(tmpl))}
}

func (r *Renderer) Render(_ context.Context, in render.ResolvedReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.t.Execute(&buf, in); err != nil {
		return nil, fmt.Errorf("render report %s: %w", in.Report.ID, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

package signuppage

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/haguru/signup/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Endpoints are the URLs the rendered page talks to.
type Endpoints struct {
	// Fragment re-renders the form and is polled while a request is outstanding.
	Fragment string
	// Input receives field values as the user types and answers with the button.
	Input string
	// Submit receives the button click.
	Submit string
	// Script is the htmx script loaded by the full document. Empty omits it.
	Script string
}

var DefaultEndpoints = Endpoints{
	Fragment: "/signup/fragment",
	Input:    "/signup/input",
	Submit:   "/signup/submit",
	Script:   "https://unpkg.com/htmx.org@2.0.4",
}

type fieldView struct {
	ID    string
	Label string
	Type  string
	Value string
	Error string
}

type pageView struct {
	Title          string
	TestID         string
	ActivationInfo string
	Succeeded      bool
	APIProgress    bool
	ButtonDisabled bool
	Fields         []fieldView
	Endpoints      Endpoints
}

func (p *Page) view() pageView {
	p.mu.Lock()
	defer p.mu.Unlock()

	fields := make([]fieldView, 0, len(models.Fields))
	for _, f := range models.Fields {
		fields = append(fields, fieldView{
			ID:    string(f),
			Label: f.Label(),
			Type:  f.InputType(),
			Value: p.state.Value(f),
			Error: p.state.ValidationErrors.Get(string(f)),
		})
	}

	return pageView{
		Title:          Title,
		TestID:         FormTestID,
		ActivationInfo: MsgActivationInfo,
		Succeeded:      p.state.SuccessfullySignedUp,
		APIProgress:    p.state.APIProgress,
		ButtonDisabled: !p.state.CanSubmit(),
		Fields:         fields,
		Endpoints:      p.endpoints,
	}
}

// Render writes the page fragment: the form, or the activation message once
// the sign-up succeeded.
func (p *Page) Render(w io.Writer) error {
	return p.execute(w, "fragment")
}

// RenderButton writes only the submit button.
func (p *Page) RenderButton(w io.Writer) error {
	return p.execute(w, "button")
}

// RenderDocument writes a complete HTML document around the fragment.
func (p *Page) RenderDocument(w io.Writer) error {
	return p.execute(w, "document")
}

func (p *Page) execute(w io.Writer, name string) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, p.view()); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

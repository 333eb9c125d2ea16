package dashboard

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var placeholders = map[Section]string{
	SectionCities:   "Search and manage your favorite cities here.",
	SectionMap:      "Interactive map will be displayed here.",
	SectionSettings: "Adjust your dashboard settings here.",
}

// NavItem is one sidebar entry
type NavItem struct {
	Section Section
	Active  bool
	Href    string
}

// PanelView is one content panel
type PanelView struct {
	Section     Section
	Visible     bool
	Placeholder string
}

// Page is the data for a full dashboard render
type Page struct {
	State   State
	Nav     []NavItem
	Panels  []PanelView
	Weather *WeatherView
	Notice  string

	NotifyMS     int64
	GeoTimeoutMS int64
	Messages     map[string]string
}

// NewPage builds the page for a state. location holds the city or lat/lon query
// so navigation keeps the current place.
func NewPage(state State, location url.Values) Page {
	page := Page{
		State:        state,
		NotifyMS:     NotificationDuration.Milliseconds(),
		GeoTimeoutMS: GeolocationTimeout.Milliseconds(),
		Messages: map[string]string{
			"empty":       MsgEmptyCity,
			"notFound":    MsgWeatherNotFound,
			"unsupported": MsgGeolocationUnsupported,
			"geo0":        GeoUnknown.Message(),
			"geo1":        GeoPermissionDenied.Message(),
			"geo2":        GeoPositionUnavailable.Message(),
			"geo3":        GeoTimeout.Message(),
		},
	}

	for _, p := range state.Panels() {
		q := url.Values{}
		for k, v := range location {
			q[k] = v
		}
		q.Set("section", string(p.Section))

		page.Nav = append(page.Nav, NavItem{Section: p.Section, Active: p.Visible, Href: "/?" + q.Encode()})
		page.Panels = append(page.Panels, PanelView{Section: p.Section, Visible: p.Visible, Placeholder: placeholders[p.Section]})
	}
	return page
}

// Renderer executes the embedded dashboard templates
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderPage writes the full dashboard page
func (r *Renderer) RenderPage(w io.Writer, page Page) error {
	if err := r.tmpl.ExecuteTemplate(w, "page.html", page); err != nil {
		return fmt.Errorf("dashboard: failed to render page: %w", err)
	}
	return nil
}

// RenderWeather writes only the weather panel
func (r *Renderer) RenderWeather(w io.Writer, view WeatherView) error {
	if err := r.tmpl.ExecuteTemplate(w, "weather", view); err != nil {
		return fmt.Errorf("dashboard: failed to render weather panel: %w", err)
	}
	return nil
}

// StaticFS returns the embedded script and stylesheet
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

package dashboard

// Section names a dashboard panel
type Section string

const (
	SectionWeather  Section = "Weather"
	SectionCities   Section = "Cities"
	SectionMap      Section = "Map"
	SectionSettings Section = "Settings"
)

// Sections lists the panels in navigation order
var Sections = []Section{SectionWeather, SectionCities, SectionMap, SectionSettings}

// Theme is the persisted colour scheme
type Theme string

const (
	ThemeDefault Theme = "default"
	ThemeLight   Theme = "light"
)

// ParseTheme maps a stored value to a Theme; anything but "light" is the default
func ParseTheme(v string) Theme {
	if Theme(v) == ThemeLight {
		return ThemeLight
	}
	return ThemeDefault
}

// ParseSection returns the named section, if it exists
func ParseSection(v string) (Section, bool) {
	for _, s := range Sections {
		if string(s) == v {
			return s, true
		}
	}
	return "", false
}

// State is the UI state of one dashboard page.
// Transitions return a new value and never mutate the receiver.
type State struct {
	ActiveSection Section
	Theme         Theme
}

// DefaultState is the state at page load
func DefaultState() State {
	return State{ActiveSection: SectionWeather, Theme: ThemeDefault}
}

// Navigate activates the named section. Unknown names leave the state unchanged.
func (s State) Navigate(name string) State {
	if section, ok := ParseSection(name); ok {
		s.ActiveSection = section
	}
	return s
}

// WithTheme applies a theme
func (s State) WithTheme(theme Theme) State {
	s.Theme = theme
	return s
}

// ShowsWeather reports whether the weather panel is the visible one
func (s State) ShowsWeather() bool {
	return s.ActiveSection == SectionWeather
}

// BodyClass is the CSS class for <body>
func (s State) BodyClass() string {
	if s.Theme == ThemeLight {
		return "light"
	}
	return ""
}

// Panel is the rendered visibility of one section
type Panel struct {
	Section Section
	Visible bool
}

// Panels lists every section with exactly the active one visible
func (s State) Panels() []Panel {
	panels := make([]Panel, len(Sections))
	for i, section := range Sections {
		panels[i] = Panel{Section: section, Visible: section == s.ActiveSection}
	}
	return panels
}

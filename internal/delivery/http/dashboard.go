package http

import (
	"bytes"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/weatherdash/backend/internal/dashboard"
)

const themeCookie = "theme"

// stateFromRequest rebuilds the UI state from the theme cookie and ?section=
func stateFromRequest(c *fiber.Ctx) dashboard.State {
	return dashboard.DefaultState().
		WithTheme(dashboard.ParseTheme(c.Cookies(themeCookie))).
		Navigate(c.Query("section"))
}

// locationParams keeps the city or lat/lon parameters of the request
func locationParams(c *fiber.Ctx) url.Values {
	params := url.Values{}
	for _, key := range []string{"city", "lat", "lon"} {
		if v := c.Query(key); v != "" {
			params.Set(key, v)
		}
	}
	return params
}

// Index renders the full dashboard. A place in the query is looked up before rendering
// when the weather panel is the visible one.
func (h *Handler) Index(c *fiber.Ctx) error {
	params := locationParams(c)
	state := stateFromRequest(c)
	page := dashboard.NewPage(state, params)

	args := c.Request().URI().QueryArgs()
	hasCoords := params.Has("lat") && params.Has("lon")

	switch {
	case !state.ShowsWeather():
		// placeholder panels never need a forecast
	case args.Has("city") && !hasCoords && dashboard.ValidateSearch(c.Query("city")) != "":
		page.Notice = dashboard.ValidateSearch(c.Query("city"))
	case len(params) > 0:
		forecast, err := h.weatherSvc.LookupParams(c.Context(), params.Get("city"), params.Get("lat"), params.Get("lon"))
		if err != nil {
			page.Notice = lookupError(err).Message
			break
		}
		view := dashboard.NewWeatherView(forecast)
		page.Weather = &view
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderPage(&buf, page); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// WeatherPanel renders only the weather panel for the dashboard script.
// Failures are JSON errors so the current panel stays as it is.
func (h *Handler) WeatherPanel(c *fiber.Ctx) error {
	forecast, err := h.weatherSvc.LookupParams(c.Context(), c.Query("city"), c.Query("lat"), c.Query("lon"))
	if err != nil {
		return lookupError(err)
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderWeather(&buf, dashboard.NewWeatherView(forecast)); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// SetTheme persists the selected theme in a cookie and redirects back
func (h *Handler) SetTheme(c *fiber.Ctx) error {
	theme := dashboard.ParseTheme(c.FormValue("theme"))

	cookie := &fiber.Cookie{
		Name:     themeCookie,
		Value:    string(dashboard.ThemeLight),
		Path:     "/",
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if theme != dashboard.ThemeLight {
		cookie.Value = ""
		cookie.Expires = time.Unix(0, 0)
	}
	c.Cookie(cookie)

	return c.Redirect(backTo(c.Get(fiber.HeaderReferer)), fiber.StatusSeeOther)
}

// backTo keeps only the local path of a referer
func backTo(referer string) string {
	u, err := url.Parse(referer)
	if err != nil || u.Path == "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}

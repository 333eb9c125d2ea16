package dashboard

const iconBase = "https://cdn-icons-png.flaticon.com/512/"

// DefaultIcon is shown for any code outside the table
const DefaultIcon = iconBase + "1163/1163621.png"

// UnknownCondition is the text for any code outside the table
const UnknownCondition = "Unknown"

// Tables are grouped by category: clear, cloudy, fog, drizzle, rain, snow,
// showers, thunderstorm.

// codeRange covers the weather codes from..to inclusive.
// Only the codes listed in codes match; nil codes means every code in range.
type codeRange struct {
	from, to int
	codes    []int
	value    string
}

func (r codeRange) contains(code int) bool {
	if code < r.from || code > r.to {
		return false
	}
	if r.codes == nil {
		return true
	}
	for _, c := range r.codes {
		if c == code {
			return true
		}
	}
	return false
}

var iconTable = []codeRange{
	{from: 0, to: 0, value: iconBase + "869/869869.png"},
	{from: 1, to: 3, value: iconBase + "1163/1163624.png"},
	{from: 45, to: 48, codes: []int{45, 48}, value: iconBase + "4005/4005900.png"},
	{from: 51, to: 55, codes: []int{51, 53, 55}, value: iconBase + "414/414974.png"},
	{from: 61, to: 65, codes: []int{61, 63, 65}, value: iconBase + "1163/1163620.png"},
	{from: 71, to: 75, codes: []int{71, 73, 75}, value: iconBase + "642/642102.png"},
	{from: 80, to: 82, value: iconBase + "1163/1163619.png"},
	{from: 95, to: 99, codes: []int{95, 96, 99}, value: iconBase + "1146/1146869.png"},
}

var textTable = []codeRange{
	{from: 0, to: 0, value: "Clear sky"},
	{from: 1, to: 1, value: "Mainly clear"},
	{from: 2, to: 2, value: "Partly cloudy"},
	{from: 3, to: 3, value: "Overcast"},
	{from: 45, to: 45, value: "Fog"},
	{from: 48, to: 48, value: "Depositing rime fog"},
	{from: 51, to: 55, codes: []int{51, 53, 55}, value: "Drizzle"},
	{from: 61, to: 65, codes: []int{61, 63, 65}, value: "Rain"},
	{from: 71, to: 75, codes: []int{71, 73, 75}, value: "Snow"},
	{from: 80, to: 82, value: "Rain showers"},
	{from: 95, to: 99, codes: []int{95, 96, 99}, value: "Thunderstorm"},
}

func lookup(table []codeRange, code int, fallback string) string {
	for _, r := range table {
		if r.contains(code) {
			return r.value
		}
	}
	return fallback
}

// WeatherIcon maps a weather code to an icon URL
func WeatherIcon(code int) string {
	return lookup(iconTable, code, DefaultIcon)
}

// WeatherText maps a weather code to a short description
func WeatherText(code int) string {
	return lookup(textTable, code, UnknownCondition)
}

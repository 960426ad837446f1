// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package template

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/mattn/go-runewidth"
	"github.com/vorlif/spreak"
	"github.com/vorlif/spreak/localize"

	"github.com/wneessen/weather-tui/internal/config"
	"github.com/wneessen/weather-tui/internal/presenter"
)

// emojiCells is the number of terminal cells an icon plus its padding occupies.
const emojiCells = 3

type Templates struct {
	Text      *template.Template
	Tooltip   *template.Template
	localizer *spreak.Localizer
}

var i18nVars = map[string]localize.MsgID{
	"today":           "Today",
	"pop":             "Probability of precipitation",
	"precipitation":   "Precipitation",
	"pressure":        "Pressure",
	"windspeed":       "Wind speed",
	"winddir":         "Wind direction",
	"sunrise":         "Sunrise",
	"sunset":          "Sunset",
	"moonphase":       "Moon phase",
	"New Moon":        "New moon",
	"Waxing Crescent": "Waxing crescent",
	"First Quarter":   "First quarter",
	"Waxing Gibbous":  "Waxing gibbous",
	"Full Moon":       "Full moon",
	"Waning Gibbous":  "Waning gibbous",
	"Third Quarter":   "Third quarter",
	"Waning Crescent": "Waning crescent",
}

func New(conf *config.Config, loc *spreak.Localizer) (*Templates, error) {
	tpls := new(Templates)
	tpls.localizer = loc

	tpl, err := template.New("text").Funcs(tpls.templateFuncMap()).Parse(conf.Templates.Text)
	if err != nil {
		return tpls, fmt.Errorf("failed to parse text template: %w", err)
	}
	tpls.Text = tpl

	tpl, err = template.New("tooltip").Funcs(tpls.templateFuncMap()).Parse(conf.Templates.Tooltip)
	if err != nil {
		return tpls, fmt.Errorf("failed to parse tooltip template: %w", err)
	}
	tpls.Tooltip = tpl

	return tpls, nil
}

// Render executes tpl with the given view model.
func Render(tpl *template.Template, vm presenter.ViewModel) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := tpl.Execute(buf, vm); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", tpl.Name(), err)
	}
	return buf.String(), nil
}

func (t *Templates) templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"loc":        t.loc,
		"lc":         strings.ToLower,
		"uc":         strings.ToUpper,
		"icon":       presenter.ConditionIcon,
		"precipIcon": precipitationIcon,
		"emojiSpace": EmojiWithSpace,
	}
}

func (t *Templates) loc(val string) string {
	if raw, ok := i18nVars[val]; ok {
		return t.localizer.Get(raw)
	}
	return val
}

func precipitationIcon(marker string) string {
	if icon, ok := presenter.PrecipitationIcons[marker]; ok {
		return icon
	}
	return marker
}

// EmojiWithSpace pads an icon so that the text after it starts at the same column regardless
// of the icon width.
func EmojiWithSpace(emoji string) string {
	width := runewidth.StringWidth(emoji)
	return emoji + strings.Repeat(" ", max(1, emojiCells-width))
}

// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"bytes"
	"text/template"
)

const shareTemplate = `Actual weather for {{.Location}}:
Outdoor weather: {{.TempWithDescription}}
Probability of precipitation: {{.Pop}}
Precipitation: {{.Precipitation}}
Pressure: {{.Pressure}}
Wind speed: {{.WindSpeed}}
Wind direction: {{.WindDirection}}`

var shareTpl = template.Must(template.New("share").Parse(shareTemplate))

// ShareText renders the plain text summary of today's conditions.
func ShareText(today Today) string {
	buf := bytes.NewBuffer(nil)
	// Today only has string fields, so execution cannot fail
	_ = shareTpl.Execute(buf, today)
	return buf.String()
}

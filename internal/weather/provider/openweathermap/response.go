// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openweathermap

// Pointer fields are required to be present in the payload, a zero value is a valid reading.

type condition struct {
	ID          *int   `json:"id" validate:"required"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon" validate:"required"`
}

type oneCallResponse struct {
	Current *currentBlock `json:"current" validate:"required"`
	Daily   []dailyBlock  `json:"daily" validate:"required,min=1,dive"`
}

type currentBlock struct {
	Temp      *float64    `json:"temp" validate:"required"`
	Pressure  *int        `json:"pressure" validate:"required"`
	WindSpeed *float64    `json:"wind_speed" validate:"required"`
	WindDeg   *int        `json:"wind_deg" validate:"required"`
	Weather   []condition `json:"weather" validate:"required,min=1,dive"`
}

type dailyBlock struct {
	Temp     *dailyTemp  `json:"temp" validate:"required"`
	Pressure *int        `json:"pressure" validate:"required"`
	Weather  []condition `json:"weather" validate:"required,dive"`
	Pop      *float64    `json:"pop" validate:"required,gte=0,lte=1"`
	Snow     *float64    `json:"snow"`
	Rain     *float64    `json:"rain"`
}

type dailyTemp struct {
	Day *float64 `json:"day" validate:"required"`
}

type forecastResponse struct {
	List []forecastItem `json:"list" validate:"required,dive"`
	City *city          `json:"city" validate:"required"`
}

type forecastItem struct {
	Dt      *int64        `json:"dt" validate:"required"`
	Main    *forecastMain `json:"main" validate:"required"`
	Weather []condition   `json:"weather" validate:"required,dive"`
}

type forecastMain struct {
	Temp *float64 `json:"temp" validate:"required"`
}

type city struct {
	Name    string `json:"name" validate:"required"`
	Country string `json:"country"`
}

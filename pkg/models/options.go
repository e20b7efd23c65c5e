package models

// Option is one entry of a select input
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FormOptions lists the choices offered by the select inputs of both forms
type FormOptions struct {
	Locations     []Option `json:"locations"`
	MoveTimelines []Option `json:"moveTimelines"`
	PropertyTypes []Option `json:"propertyTypes"`
	ActiveUnits   []Option `json:"activeUnits"`
}

var DefaultFormOptions = FormOptions{
	Locations: []Option{
		{Value: "hitech-city", Label: "Hi-Tech City"},
		{Value: "gachibowli", Label: "Gachibowli"},
		{Value: "kondapur", Label: "Kondapur"},
		{Value: "madhapur", Label: "Madhapur"},
		{Value: "other", Label: "Other"},
	},
	MoveTimelines: []Option{
		{Value: "0-30", Label: "0–30 days"},
		{Value: "30-60", Label: "30–60 days"},
		{Value: "60-90", Label: "60–90 days"},
	},
	PropertyTypes: []Option{
		{Value: "apartment", Label: "Apartment"},
		{Value: "independent", Label: "Independent home"},
		{Value: "pg", Label: "PG/Hostel"},
		{Value: "other", Label: "Other"},
	},
	ActiveUnits: []Option{
		{Value: "1-2", Label: "1–2"},
		{Value: "3-5", Label: "3–5"},
		{Value: "6+", Label: "6+"},
	},
}

// Contains reports whether value is one of the options
func Contains(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

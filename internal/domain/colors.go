package domain

import "math/rand"

// pastelPalette holds the avatar colors assigned at signup.
var pastelPalette = []string{
	"#FFB3BA", "#FFDFBA", "#FFFFBA", "#BAFFC9", "#BAE1FF",
	"#E0BBE4", "#D5AAFF", "#C7CEEA", "#B5EAD7", "#FFDAC1",
}

// PastelColor picks a random pastel avatar color.
func PastelColor() string {
	return pastelPalette[rand.Intn(len(pastelPalette))]
}

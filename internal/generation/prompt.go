package generation

import "fmt"

const imagePromptTemplate = "A simple black and white line art drawing of %s, suitable for a children's coloring book page. Clean bold outlines, no shading, no color, white background."

// Prompt builds the line art prompt for a theme.
func Prompt(theme string) string {
	return fmt.Sprintf(imagePromptTemplate, theme)
}

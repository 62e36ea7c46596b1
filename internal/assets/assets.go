package assets

// DefaultTemplateName is the name of the built-in card template.
const DefaultTemplateName = "storycard"

// templateExt is the file extension of card templates.
const templateExt = ".tex"

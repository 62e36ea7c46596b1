// Package storycards turns an issue-tracker CSV export into LaTeX story cards.
//
// # Quick Start
//
// Read the export, create a generator and render the cards:
//
//	issues, err := storycards.ReadIssuesFile("target/issues-export/issues.csv", storycards.DefaultColumns)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	gen, err := storycards.NewGenerator(storycards.WithProgress(os.Stdout))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := gen.Generate(ctx, issues)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("storycards.tex", []byte(result.Output), 0644)
//
// Issues whose description has no body are skipped and reported in
// result.Skipped; the remaining cards are concatenated in CSV order.
//
// # Description Format
//
// Each issue description is expected to follow the story template:
//
//	- **Storypoints**: 5
//	- **Priorisierung**: 2
//	- **Risiko**: 3
//
//	The free-form story text, with ``inline code``.
//
//	**Abgeschlossen wenn**
//	- [x] first acceptance criterion
//	- [ ] second acceptance criterion
//
// The header lines fill the >>>POINTS<<<, >>>PRIO<<< and >>>RISK<<<
// placeholders, the text between the markers fills >>>DESCRIPTION<<< and the
// checklist is rendered as \item entries into >>>CLOSEDIF<<<.
//
// # Configuration
//
// Use functional options to customize the generator:
//
//	gen, err := storycards.NewGenerator(
//	    storycards.WithTemplateName("compact"),
//	    storycards.WithAssetPath("/path/to/custom/assets"),
//	    storycards.WithChecklistParser("markdown"),
//	)
//
// # Custom Templates
//
// Override built-in templates with an asset directory:
//
//	assets/
//	└── templates/
//	    └── custom.tex
//
// or pass template source directly with WithTemplate.
package storycards

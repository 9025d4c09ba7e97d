package analyzer

import (
	"fmt"
	"unicode/utf8"

	"github.com/nao1215/seoaudit/internal/model"
)

// Alt text length band considered descriptive, in characters.
const (
	AltMinLength = 10
	AltMaxLength = 125
)

// ImagesAnalyzer checks image alternative text.
type ImagesAnalyzer struct{}

// NewImagesAnalyzer creates an ImagesAnalyzer.
func NewImagesAnalyzer() *ImagesAnalyzer {
	return &ImagesAnalyzer{}
}

// Name returns the analyzer category.
func (a *ImagesAnalyzer) Name() model.CategoryName {
	return model.CategoryImages
}

// Analyze scores alt text coverage. A page without images is not
// penalized; it only receives an opportunity finding.
func (a *ImagesAnalyzer) Analyze(in *Input) model.CategoryResult {
	images := in.Doc.Images
	if len(images) == 0 {
		return model.NewCategoryResult(a.Name(), 100, []model.Issue{
			model.Warning(model.PriorityLow,
				"No images found on the page",
				"Relevant images with descriptive alt text can rank in image search"),
		})
	}

	score := 100
	issues := make([]model.Issue, 0, 3)

	missing, outOfBand, good := 0, 0, 0
	for _, img := range images {
		if !img.HasAlt {
			missing++
			continue
		}
		n := utf8.RuneCountInString(img.Alt)
		if n < AltMinLength || n > AltMaxLength {
			outOfBand++
		} else {
			good++
		}
	}

	if missing > 0 {
		score -= min(10*missing, 50)
		issues = append(issues, model.Error(model.PriorityHigh,
			fmt.Sprintf("%d of %d images have no alt text", missing, len(images)),
			"Describe every meaningful image with an alt attribute"))
	}
	if outOfBand > 0 {
		score -= min(5*outOfBand, 20)
		issues = append(issues, model.Warning(model.PriorityLow,
			fmt.Sprintf("%d images have alt text that is too short or too long", outOfBand),
			"Keep alt text between 10 and 125 characters"))
	}
	if good > 0 {
		issues = append(issues, model.Success(
			fmt.Sprintf("%d images have descriptive alt text", good)))
	}

	return model.NewCategoryResult(a.Name(), score, issues)
}

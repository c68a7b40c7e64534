package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"github.com/heartmarshall/wudao-dict/internal/domain"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		units string
		want  domain.SentenceFormat
	}{
		{name: "empty list", units: `[]`, want: domain.FormatEmpty},
		{name: "plain", units: `[["a","b"]]`, want: domain.FormatPlain},
		{name: "annotated", units: `[["a","n.",[["x","y"]]]]`, want: domain.FormatAnnotated},
		{name: "decided by first element only", units: `[["a","b"],["c","d","e"]]`, want: domain.FormatPlain},
		{name: "later plain unit does not change annotated", units: `[["a","b","c"],["d","e"]]`, want: domain.FormatAnnotated},
		{name: "first element not a list", units: `["ab",["c","d"]]`, want: domain.FormatAnnotated},
		{name: "first element is an object", units: `[{"a":1,"b":2},["c","d"]]`, want: domain.FormatAnnotated},
		{name: "single element unit", units: `[["a"]]`, want: domain.FormatAnnotated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(gjson.Parse(tt.units).Array()))
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	t.Parallel()
	assert.Equal(t, domain.FormatEmpty, Classify(nil))
}

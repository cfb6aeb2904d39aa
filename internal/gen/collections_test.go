package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"xsdmodel/internal/schema"
)

func TestCollectionPaths_RootAndNested(t *testing.T) {
	doc := &schema.Document{
		Elements: []schema.Element{
			{Name: "Count", Type: "xsd:integer", MaxOccurs: schema.Unbounded},
			{Name: "Library", Type: "Library_t"},
		},
		ComplexTypes: []schema.ComplexType{
			{Name: "Library_t", Sequence: &schema.Sequence{
				Elements: []schema.Element{
					{Name: "Book", Type: "Book_t", MaxOccurs: schema.Unbounded},
					{Name: "Name", Type: "xsd:string"},
				},
			}},
			{Name: "Book_t", Sequence: &schema.Sequence{
				Elements: []schema.Element{
					{Name: "Author", Type: "xsd:string", MaxOccurs: schema.Unbounded},
				},
			}},
		},
	}

	paths := CollectionPaths(doc, 16)
	assert.Equal(t, []string{
		"Count",
		"Library/Book",
		"Library/Book/Author",
	}, paths)
}

func TestCollectionPaths_InheritedFieldsTraversed(t *testing.T) {
	doc := &schema.Document{
		Elements: []schema.Element{{Name: "Course", Type: "Course_t"}},
		ComplexTypes: []schema.ComplexType{
			{Name: "Base_t", Abstract: true, Sequence: &schema.Sequence{
				Elements: []schema.Element{
					{Name: "Tag", Type: "xsd:string", MaxOccurs: schema.Unbounded},
				},
			}},
			{Name: "Course_t", ComplexContent: &schema.ComplexContent{
				Extension: schema.Extension{
					Base: "Base_t",
					Sequence: &schema.Sequence{
						Elements: []schema.Element{
							{Name: "Lap", Type: "xsd:string", MaxOccurs: schema.Unbounded},
						},
					},
				},
			}},
		},
	}

	paths := CollectionPaths(doc, 16)
	assert.Equal(t, []string{"Course/Lap", "Course/Tag"}, paths)
}

func TestCollectionPaths_SelfReferenceStopsAtMaxDepth(t *testing.T) {
	doc := &schema.Document{
		Elements: []schema.Element{{Name: "Node", Type: "Node_t"}},
		ComplexTypes: []schema.ComplexType{
			{Name: "Node_t", Sequence: &schema.Sequence{
				Elements: []schema.Element{
					{Name: "Child", Type: "Node_t", MaxOccurs: schema.Unbounded},
				},
			}},
		},
	}

	paths := CollectionPaths(doc, 4)

	// Paths of length maxDepth are discarded before inspection, so only
	// depths 2 and 3 survive; the traversal terminates.
	assert.Equal(t, []string{
		"Node/Child",
		"Node/Child/Child",
	}, paths)
}

func TestCollectionPaths_BaseChainCycleDoesNotHang(t *testing.T) {
	doc := &schema.Document{
		Elements: []schema.Element{{Name: "A", Type: "A_t"}},
		ComplexTypes: []schema.ComplexType{
			{Name: "A_t", ComplexContent: &schema.ComplexContent{
				Extension: schema.Extension{Base: "B_t"},
			}},
			{Name: "B_t", ComplexContent: &schema.ComplexContent{
				Extension: schema.Extension{
					Base: "A_t",
					Sequence: &schema.Sequence{
						Elements: []schema.Element{
							{Name: "Item", Type: "xsd:string", MaxOccurs: schema.Unbounded},
						},
					},
				},
			}},
		},
	}

	paths := CollectionPaths(doc, 8)
	assert.Contains(t, paths, "A/Item")
}

package faker_test

import (
	"testing"

	faker "github.com/goliatone/go-faker"
	"github.com/goliatone/go-faker/mersenne"
)

var testSchema = map[faker.Category][]string{
	faker.CategoryWord: {"noun", "verb"},
	faker.CategoryName: {"first_name", "title"},
}

func testPacks() map[string]faker.Pack {
	return map[string]faker.Pack{
		"en": {
			Title:     "English",
			Separator: " & ",
			Categories: map[faker.Category]faker.Definitions{
				faker.CategoryWord: {
					"noun": faker.Candidates("cat", "dog"),
					"verb": faker.Candidates("run", "jump"),
				},
				faker.CategoryName: {
					"first_name": faker.Candidates("Ada", "Grace", "Alan"),
					"title":      faker.Object(map[string]any{"job": []any{"Engineer"}}),
				},
			},
		},
		"de": {
			Title: "Deutsch",
			Categories: map[faker.Category]faker.Definitions{
				faker.CategoryWord: {"noun": faker.Candidates("Hund")},
			},
		},
		"xx": {},
	}
}

func newTestFaker(t *testing.T, opts ...faker.Option) *faker.Faker {
	t.Helper()
	base := []faker.Option{faker.WithSchema(testSchema), faker.WithSeed(mersenne.ScalarSeed(42))}
	f, err := faker.New(testPacks(), append(base, opts...)...)
	if err != nil {
		t.Fatalf("new faker: %v", err)
	}
	return f
}

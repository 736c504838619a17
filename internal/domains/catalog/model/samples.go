package model

// sampleBooks is the offline fallback used when the external catalog
// is unreachable. Unknown genres fall back to the "general" set.
var sampleBooks = map[string][]CatalogBook{
	"fiction": {
		{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Subjects: []string{"fiction", "classic"}},
		{Title: "To Kill a Mockingbird", Author: "Harper Lee", Subjects: []string{"fiction", "classic"}},
		{Title: "1984", Author: "George Orwell", Subjects: []string{"fiction", "dystopia"}},
		{Title: "Pride and Prejudice", Author: "Jane Austen", Subjects: []string{"fiction", "romance"}},
	},
	"science": {
		{Title: "A Brief History of Time", Author: "Stephen Hawking", Subjects: []string{"science", "physics"}},
		{Title: "The Selfish Gene", Author: "Richard Dawkins", Subjects: []string{"science", "biology"}},
		{Title: "Cosmos", Author: "Carl Sagan", Subjects: []string{"science", "astronomy"}},
	},
	"general": {
		{Title: "Sapiens", Author: "Yuval Noah Harari", Subjects: []string{"history"}},
		{Title: "Thinking, Fast and Slow", Author: "Daniel Kahneman", Subjects: []string{"psychology"}},
		{Title: "The Art of War", Author: "Sun Tzu", Subjects: []string{"strategy"}},
		{Title: "Meditations", Author: "Marcus Aurelius", Subjects: []string{"philosophy"}},
	},
}

// SampleBooks returns the offline sample set for a genre
func SampleBooks(genre string) []CatalogBook {
	if books, ok := sampleBooks[genre]; ok {
		return books
	}
	return sampleBooks["general"]
}

package schema

// StoryTable represents the 'story' table
type StoryTable struct {
	Table     string
	Seq       string
	ID        string
	Category  string
	Title     string
	Author    string
	Content   string
	Downloads string
	Views     string
	Likes     string
	CreatedAt string
}

// Story is the schema definition for story
var Story = StoryTable{
	Table:     "story",
	Seq:       "seq",
	ID:        "id",
	Category:  "category",
	Title:     "title",
	Author:    "author",
	Content:   "content",
	Downloads: "downloads",
	Views:     "views",
	Likes:     "likes",
	CreatedAt: "createdat",
}

// Columns lists the columns hydrated into a story record, in scan order.
func (t StoryTable) Columns() []string {
	return []string{t.ID, t.Category, t.Title, t.Author, t.Content, t.Downloads, t.Views, t.Likes}
}

package domain

import "time"

// Like records that a user liked a post. A post holds at most one Like per user.
type Like struct {
	UserID string `json:"user"`
}

// Comment is a reply on a post. Name and Avatar are a snapshot of the author
// taken when the comment was written and are not kept in sync afterwards.
type Comment struct {
	ID     string    `json:"id"`
	UserID string    `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

// Post is the content aggregate root. Likes and Comments are kept newest-first.
type Post struct {
	ID       string       `json:"id"`
	UserID   string       `json:"user_id"`
	User     *UserSummary `json:"user,omitempty"`
	Text     string       `json:"text"`
	Likes    []Like       `json:"likes"`
	Comments []Comment    `json:"comments"`
	Date     time.Time    `json:"date"`
}

func (p *Post) IsAuthor(userID string) bool {
	return p.UserID == userID
}

func (p *Post) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// ToggleLike removes the user's like if present, otherwise prepends one.
// It reports whether the post is liked by the user afterwards.
func (p *Post) ToggleLike(userID string) bool {
	if p.LikedBy(userID) {
		kept := make([]Like, 0, len(p.Likes))
		for _, l := range p.Likes {
			if l.UserID != userID {
				kept = append(kept, l)
			}
		}
		p.Likes = kept
		return false
	}
	p.Likes = append([]Like{{UserID: userID}}, p.Likes...)
	return true
}

// LikerIDs returns the liking user ids in stored order.
func (p *Post) LikerIDs() []string {
	ids := make([]string, 0, len(p.Likes))
	for _, l := range p.Likes {
		ids = append(ids, l.UserID)
	}
	return ids
}

func (p *Post) PrependComment(c Comment) {
	p.Comments = append([]Comment{c}, p.Comments...)
}

// HasCommentBy reports whether the user wrote any comment on the post.
// Comment edits and deletes are authorized against this collection-level check.
func (p *Post) HasCommentBy(userID string) bool {
	for _, c := range p.Comments {
		if c.UserID == userID {
			return true
		}
	}
	return false
}

// EditComment rewrites the text of comments matching both id and author.
// It returns the number of comments changed, which may be zero.
func (p *Post) EditComment(commentID, userID, text string) int {
	n := 0
	for i := range p.Comments {
		if p.Comments[i].ID == commentID && p.Comments[i].UserID == userID {
			p.Comments[i].Text = text
			n++
		}
	}
	return n
}

// RemoveComment drops every comment with the given id, whoever wrote it.
func (p *Post) RemoveComment(commentID string) int {
	kept := make([]Comment, 0, len(p.Comments))
	for _, c := range p.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	n := len(p.Comments) - len(kept)
	p.Comments = kept
	return n
}

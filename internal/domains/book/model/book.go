package model

// Book represents the books table; JSON shape is the public API contract
type Book struct {
	ISBN      string `json:"isbn" db:"isbn"`
	AmazonURL string `json:"amazon_url" db:"amazon_url"`
	Author    string `json:"author" db:"author"`
	Language  string `json:"language" db:"language"`
	Pages     int    `json:"pages" db:"pages"`
	Publisher string `json:"publisher" db:"publisher"`
	Title     string `json:"title" db:"title"`
	Year      int    `json:"year" db:"year"`
}

// BookUpdate chứa các field được gửi trong PUT, nil = giữ nguyên giá trị cũ.
// ISBN là key nên không có ở đây.
type BookUpdate struct {
	AmazonURL *string
	Author    *string
	Language  *string
	Pages     *int
	Publisher *string
	Title     *string
	Year      *int
}

// IsEmpty true khi request không thay đổi field nào
func (u *BookUpdate) IsEmpty() bool {
	return u.AmazonURL == nil && u.Author == nil && u.Language == nil &&
		u.Pages == nil && u.Publisher == nil && u.Title == nil && u.Year == nil
}

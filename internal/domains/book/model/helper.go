package model

import "fmt"

// cacheNamespace tách key của service khỏi các app khác dùng chung Redis DB
const cacheNamespace = "books-api:"

// BookListGenerationKey tăng mỗi khi danh sách books thay đổi
const BookListGenerationKey = cacheNamespace + "books:list:gen"

// BookGenerationKey tăng mỗi khi book isbn bị update/delete
func BookGenerationKey(isbn string) string {
	return cacheNamespace + "book:gen:" + isbn
}

// BookCacheKey - key cache cho GET /books/:isbn tại generation gen
func BookCacheKey(isbn string, gen int64) string {
	return fmt.Sprintf("%sbook:isbn:%s:v%d", cacheNamespace, isbn, gen)
}

// BookListCacheKey - key cache cho GET /books tại generation gen
func BookListCacheKey(gen int64) string {
	return fmt.Sprintf("%sbooks:list:v%d", cacheNamespace, gen)
}

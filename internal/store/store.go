// Package store is the document-store layer for the catalog. One typed store
// per entity kind wraps the generic Collection with the filters and sort
// orders the workflow handlers need. The Store handle is built once in main
// and passed into handler constructors; there is no package-level connection.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"local-library/internal/domain/catalog"
)

type Store struct {
	Authors       *AuthorStore
	Books         *BookStore
	Genres        *GenreStore
	BookInstances *BookInstanceStore
}

func New(db *mongo.Database) *Store {
	return &Store{
		Authors:       &AuthorStore{NewCollection[catalog.Author](db, "authors")},
		Books:         &BookStore{NewCollection[catalog.Book](db, "books")},
		Genres:        &GenreStore{NewCollection[catalog.Genre](db, "genres")},
		BookInstances: &BookInstanceStore{NewCollection[catalog.BookInstance](db, "bookinstances")},
	}
}

type AuthorStore struct {
	*Collection[catalog.Author]
}

// All returns every author, sorted by family name.
func (s *AuthorStore) All(ctx context.Context) ([]catalog.Author, error) {
	return s.Find(ctx, bson.M{}, "family_name")
}

func (s *AuthorStore) CountAll(ctx context.Context) (int64, error) {
	return s.Count(ctx, bson.M{})
}

type BookStore struct {
	*Collection[catalog.Book]
}

// All returns every book, sorted by title.
func (s *BookStore) All(ctx context.Context) ([]catalog.Book, error) {
	return s.Find(ctx, bson.M{}, "title")
}

// ByAuthor returns the books referencing the given author.
func (s *BookStore) ByAuthor(ctx context.Context, id primitive.ObjectID) ([]catalog.Book, error) {
	return s.Find(ctx, bson.M{"author": id}, "")
}

// ByGenre returns the books whose genre list contains the given genre.
func (s *BookStore) ByGenre(ctx context.Context, id primitive.ObjectID) ([]catalog.Book, error) {
	return s.Find(ctx, bson.M{"genre": id}, "")
}

func (s *BookStore) CountAll(ctx context.Context) (int64, error) {
	return s.Count(ctx, bson.M{})
}

type GenreStore struct {
	*Collection[catalog.Genre]
}

// All returns every genre, sorted by name.
func (s *GenreStore) All(ctx context.Context) ([]catalog.Genre, error) {
	return s.Find(ctx, bson.M{}, "name")
}

// ByName returns the genre with exactly the given name (case-sensitive),
// or ErrNotFound.
func (s *GenreStore) ByName(ctx context.Context, name string) (*catalog.Genre, error) {
	return s.FindOne(ctx, bson.M{"name": name})
}

func (s *GenreStore) CountAll(ctx context.Context) (int64, error) {
	return s.Count(ctx, bson.M{})
}

type BookInstanceStore struct {
	*Collection[catalog.BookInstance]
}

// All returns every copy, in store order.
func (s *BookInstanceStore) All(ctx context.Context) ([]catalog.BookInstance, error) {
	return s.Find(ctx, bson.M{}, "")
}

// ByBook returns the copies of the given book.
func (s *BookInstanceStore) ByBook(ctx context.Context, id primitive.ObjectID) ([]catalog.BookInstance, error) {
	return s.Find(ctx, bson.M{"book": id}, "")
}

func (s *BookInstanceStore) CountAll(ctx context.Context) (int64, error) {
	return s.Count(ctx, bson.M{})
}

func (s *BookInstanceStore) CountAvailable(ctx context.Context) (int64, error) {
	return s.Count(ctx, bson.M{"status": catalog.StatusAvailable})
}

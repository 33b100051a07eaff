package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"serwis-blogowy/internal/models"
)

func createTestPost(t *testing.T, authorID int64, title, text string) *models.Post {
	t.Helper()

	post, err := testStore.CreatePost(context.Background(), CreatePostParams{
		AuthorID: authorID,
		Title:    title,
		Text:     text,
	})
	require.NoError(t, err)
	require.NotNil(t, post)
	return post
}

func TestCreateAndGetPost(t *testing.T) {
	author := createTestUser(t, "post_author")
	created := createTestPost(t, author.ID, "Pierwszy post", "treść posta")

	require.NotZero(t, created.ID)
	require.NotNil(t, created.AuthorID)
	require.Equal(t, author.ID, *created.AuthorID)
	require.False(t, created.CreatedAt.IsZero())

	found, err := testStore.GetPostByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "Pierwszy post", found.Title)
	require.Equal(t, "treść posta", found.Text)

	missing, err := testStore.GetPostByID(context.Background(), 999999)
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestListPostsNewestFirst(t *testing.T) {
	author := createTestUser(t, "list_author")
	first := createTestPost(t, author.ID, "list one", "aaa")
	second := createTestPost(t, author.ID, "list two", "bbb")
	third := createTestPost(t, author.ID, "list three", "ccc")

	posts, err := testStore.ListPosts(context.Background(), 100, 0)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(posts), 3)

	// our three posts appear newest first
	var ids []int64
	for _, p := range posts {
		if p.AuthorID != nil && *p.AuthorID == author.ID {
			ids = append(ids, p.ID)
		}
	}
	require.Equal(t, []int64{third.ID, second.ID, first.ID}, ids)
}

func TestSearchPosts(t *testing.T) {
	author := createTestUser(t, "search_author")
	older := createTestPost(t, author.ID, "o herbacie", "Wpis o SzUkAcZu numer jeden")
	newer := createTestPost(t, author.ID, "o kawie", "Kolejny wpis o szukaczu")
	createTestPost(t, author.ID, "bez frazy", "zupełnie inna treść")

	// case-insensitive substring match over post text, newest first
	found, err := testStore.SearchPosts(context.Background(), "szukacz", 100, 0)
	require.NoError(t, err)
	require.Len(t, found, 2)
	require.Equal(t, newer.ID, found[0].ID)
	require.Equal(t, older.ID, found[1].ID)

	// no matches is an empty slice, not an error
	none, err := testStore.SearchPosts(context.Background(), "zzzXYZ_no_match", 100, 0)
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)

	// empty substring matches everything
	all, err := testStore.SearchPosts(context.Background(), "", 100, 0)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(all), 3)
}

func TestSearchPostsTreatsWildcardsLiterally(t *testing.T) {
	author := createTestUser(t, "wildcard_author")
	percent := createTestPost(t, author.ID, "procenty", "plan wykonany w 100% dzisiaj")
	createTestPost(t, author.ID, "bez procentu", "mamy 1005 pomysłów na później")
	underscore := createTestPost(t, author.ID, "podkreślnik", "tag wild_card w treści")
	createTestPost(t, author.ID, "bez podkreślnika", "tag wildxcard w treści")

	// % in the query is the character, not the LIKE any-string wildcard
	found, err := testStore.SearchPosts(context.Background(), "100%", 100, 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, percent.ID, found[0].ID)

	// _ likewise matches only a literal underscore
	found, err = testStore.SearchPosts(context.Background(), "wild_card", 100, 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, underscore.ID, found[0].ID)
}

func TestUpdatePost(t *testing.T) {
	author := createTestUser(t, "update_author")
	post := createTestPost(t, author.ID, "stary tytuł", "stara treść")

	updated, err := testStore.UpdatePost(context.Background(), post.ID, "nowy tytuł", "nowa treść")
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, "nowy tytuł", updated.Title)
	require.Equal(t, "nowa treść", updated.Text)
	require.Equal(t, post.CreatedAt, updated.CreatedAt)

	missing, err := testStore.UpdatePost(context.Background(), 999999, "x", "y")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestDeletePost(t *testing.T) {
	author := createTestUser(t, "delete_post_author")
	post := createTestPost(t, author.ID, "do usunięcia", "treść")

	deleted, err := testStore.DeletePost(context.Background(), post.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	gone, err := testStore.GetPostByID(context.Background(), post.ID)
	require.NoError(t, err)
	require.Nil(t, gone)

	deletedAgain, err := testStore.DeletePost(context.Background(), post.ID)
	require.NoError(t, err)
	require.False(t, deletedAgain)
}

func TestDeleteUserClearsPostAuthor(t *testing.T) {
	author := createTestUser(t, "orphan_author")
	post := createTestPost(t, author.ID, "osierocony post", "treść")

	deleted, err := testStore.DeleteUser(context.Background(), author.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	// the post survives with authorship cleared, no cascade
	orphan, err := testStore.GetPostByID(context.Background(), post.ID)
	require.NoError(t, err)
	require.NotNil(t, orphan)
	require.Nil(t, orphan.AuthorID)
}

func TestListPostsByAuthor(t *testing.T) {
	author := createTestUser(t, "by_author")
	other := createTestUser(t, "by_author_other")
	mine := createTestPost(t, author.ID, "mój post", "treść")
	createTestPost(t, other.ID, "cudzy post", "treść")

	posts, err := testStore.ListPostsByAuthor(context.Background(), author.ID, 100, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, mine.ID, posts[0].ID)
}

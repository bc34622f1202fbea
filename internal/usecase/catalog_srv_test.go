package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cineticket/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestHallCreate_SeatGrid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	theatre := f.theatre("Park Cinema")

	hall, err := f.service.Hall.Create(ctx, &request.HallRequest{
		TheatreID: theatre.ID.String(),
		Name:      " Hall 1 ",
		Rows:      2,
		Columns:   3,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hall 1", hall.Name)
	assert.Equal(t, 6, hall.Capacity)
	labels := make([]string, len(hall.Seats))
	for i, seat := range hall.Seats {
		labels[i] = seat.Label
	}
	assert.Equal(t, []string{"A1", "A2", "A3", "B1", "B2", "B3"}, labels)
	assert.Len(t, f.store.seats, 6)

	detail, err := f.service.Hall.GetByID(ctx, uuid.MustParse(hall.ID))
	require.NoError(t, err)
	assert.Len(t, detail.Seats, 6)
	assert.Equal(t, "B3", detail.Seats[5].Label)
}

func TestHallCreate_WideHallLabels(t *testing.T) {
	f := newFixture(t)
	theatre := f.theatre("Park Cinema")

	hall, err := f.service.Hall.Create(context.Background(), &request.HallRequest{
		TheatreID: theatre.ID.String(),
		Name:      "IMAX",
		Rows:      28,
		Columns:   1,
	})
	require.NoError(t, err)
	require.Len(t, hall.Seats, 28)
	assert.Equal(t, "Z1", hall.Seats[25].Label)
	assert.Equal(t, "AA1", hall.Seats[26].Label)
	assert.Equal(t, "AB1", hall.Seats[27].Label)
}

func TestHallCreate_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	theatre := f.theatre("Park Cinema")

	_, err := f.service.Hall.Create(ctx, &request.HallRequest{TheatreID: uuid.NewString(), Name: "X", Rows: 1, Columns: 1})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = f.service.Hall.Create(ctx, &request.HallRequest{TheatreID: theatre.ID.String(), Name: "X", Rows: 0, Columns: 1})
	assert.True(t, errors.Is(err, ErrValidation))

	f.store.fail["seat.create_batch"] = errors.New("disk full")
	_, err = f.service.Hall.Create(ctx, &request.HallRequest{TheatreID: theatre.ID.String(), Name: "X", Rows: 1, Columns: 1})
	require.Error(t, err)
	assert.Empty(t, f.store.halls)
	assert.Empty(t, f.store.seats)
}

func TestHallDelete_RefusedWithShowTimes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	theatre := f.theatre("Park Cinema")
	hall, _ := f.hall(theatre.ID, 1, 2)
	movie := f.movie("Nabat", 105)
	f.showTime(movie.ID, hall.ID, 8)

	err := f.service.Hall.Delete(ctx, hall.ID)
	assert.True(t, errors.Is(err, ErrInvalidOperation))
	assert.Contains(t, f.store.halls, hall.ID)

	empty, _ := f.hall(theatre.ID, 1, 1)
	require.NoError(t, f.service.Hall.Delete(ctx, empty.ID))
	assert.NotContains(t, f.store.halls, empty.ID)
}

func TestHallListAndRename(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	theatre := f.theatre("Park Cinema")
	hall, _ := f.hall(theatre.ID, 1, 1)
	f.hall(theatre.ID, 2, 2)

	halls, err := f.service.Hall.ListByTheatre(ctx, theatre.ID)
	require.NoError(t, err)
	assert.Len(t, halls, 2)

	_, err = f.service.Hall.ListByTheatre(ctx, uuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))

	renamed, err := f.service.Hall.Rename(ctx, hall.ID, &request.HallUpdateRequest{Name: "VIP"})
	require.NoError(t, err)
	assert.Equal(t, "VIP", renamed.Name)
	assert.Equal(t, "VIP", f.store.halls[hall.ID].Name)
}

func TestGenreCreate_Translations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	genre, err := f.service.Genre.Create(ctx, &request.GenreRequest{Name: "Drama"})
	require.NoError(t, err)
	assert.Equal(t, "Drama", genre.Name)
	assert.Equal(t, map[string]string{"en": "Drama", "ru": "ru:Drama", "az": "az:Drama"}, genre.Translations)

	id := uuid.MustParse(genre.ID)
	ru, err := f.service.Genre.GetByID(ctx, id, "RU")
	require.NoError(t, err)
	assert.Equal(t, "ru:Drama", ru.Name)
	assert.Nil(t, ru.Translations)

	// unknown language falls back to the original name
	de, err := f.service.Genre.GetByID(ctx, id, "de")
	require.NoError(t, err)
	assert.Equal(t, "Drama", de.Name)

	_, err = f.service.Genre.Create(ctx, &request.GenreRequest{Name: "drama"})
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestGenreCreate_TranslatorDown(t *testing.T) {
	f := newFixture(t)
	f.translator = fakeTranslator{err: errors.New("connection refused")}
	f.rebuild()

	genre, err := f.service.Genre.Create(context.Background(), &request.GenreRequest{Name: "Comedy"})
	require.NoError(t, err)
	assert.Empty(t, genre.Translations)
	assert.Len(t, f.store.genres, 1)
}

func TestGenreUpdate_RegeneratesTranslations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	genre, err := f.service.Genre.Create(ctx, &request.GenreRequest{Name: "Horor"})
	require.NoError(t, err)
	id := uuid.MustParse(genre.ID)

	updated, err := f.service.Genre.Update(ctx, id, &request.GenreRequest{Name: "Horror"})
	require.NoError(t, err)
	assert.Equal(t, "ru:Horror", updated.Translations["ru"])
	assert.Equal(t, "Horror", f.store.genres[id].Name)

	list, err := f.service.Genre.List(ctx, "az")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "az:Horror", list[0].Name)

	require.NoError(t, f.service.Genre.Delete(ctx, id))
	assert.True(t, errors.Is(f.service.Genre.Delete(ctx, id), ErrNotFound))
}

func TestMovieCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	drama, err := f.service.Genre.Create(ctx, &request.GenreRequest{Name: "Drama"})
	require.NoError(t, err)

	movie, err := f.service.Movie.Create(ctx, &request.MovieRequest{
		Title:           "In Autumn",
		Description:     strPtr("A quiet story"),
		DurationMinutes: 95,
		ReleaseDate:     "2024-10-01",
		Rating:          8.1,
		GenreIDs:        []string{drama.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "In Autumn", movie.Title)
	assert.Equal(t, "2024-10-01", movie.ReleaseDate)
	require.Len(t, movie.Genres, 1)
	assert.Equal(t, "Drama", movie.Genres[0].Name)

	ru, err := f.service.Movie.GetByID(ctx, uuid.MustParse(movie.ID), "ru")
	require.NoError(t, err)
	assert.Equal(t, "ru:In Autumn", ru.Title)
	require.NotNil(t, ru.Description)
	assert.Equal(t, "ru:A quiet story", *ru.Description)
	assert.Equal(t, "ru:Drama", ru.Genres[0].Name)

	_, err = f.service.Movie.Create(ctx, &request.MovieRequest{
		Title:           "Orphan genre",
		DurationMinutes: 90,
		ReleaseDate:     "2024-10-01",
		GenreIDs:        []string{uuid.NewString()},
	})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMovieListByGenre(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	drama, err := f.service.Genre.Create(ctx, &request.GenreRequest{Name: "Drama"})
	require.NoError(t, err)
	for _, title := range []string{"B movie", "A movie"} {
		_, err := f.service.Movie.Create(ctx, &request.MovieRequest{
			Title: title, DurationMinutes: 90, ReleaseDate: "2023-01-01", GenreIDs: []string{drama.ID},
		})
		require.NoError(t, err)
	}
	f.movie("Without genre", 80)

	all, err := f.service.Movie.List(ctx, &request.MovieListQuery{PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Pagination.Total)

	dramas, err := f.service.Movie.List(ctx, &request.MovieListQuery{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
		GenreID:          &drama.ID,
	})
	require.NoError(t, err)
	require.Len(t, dramas.Data, 2)
	assert.Equal(t, "A movie", dramas.Data[0].Title)
}

func TestMovieUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	movie := f.movie("Old title", 100)

	updated, err := f.service.Movie.Update(ctx, movie.ID, &request.MovieUpdateRequest{Title: strPtr("New title")})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Len(t, f.store.movies[movie.ID].Translations, 3)

	require.NoError(t, f.service.Movie.Delete(ctx, movie.ID))
	_, err = f.service.Movie.GetByID(ctx, movie.ID, "")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NotNil(t, f.store.movies[movie.ID].DeletedAt)
}

func TestMovieUploadImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	movie := f.movie("Poster test", 90)

	resp, err := f.service.Movie.UploadImage(ctx, movie.ID, ImagePoster, ImageUpload{
		Reader:      strings.NewReader("png-bytes"),
		Size:        9,
		Filename:    "Poster.PNG",
		ContentType: "image/png",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.PosterURL)
	assert.True(t, strings.HasPrefix(*resp.PosterURL, "https://cdn.test/posters/movies/"+movie.ID.String()+"/poster-"))
	assert.True(t, strings.HasSuffix(*resp.PosterURL, ".png"))
	assert.Nil(t, resp.BackdropURL)
	assert.NotNil(t, f.store.movies[movie.ID].PosterObject)
	assert.Len(t, f.storage.objects, 1)

	_, err = f.service.Movie.UploadImage(ctx, movie.ID, ImageBackdrop, ImageUpload{
		Reader: strings.NewReader("%PDF"), Filename: "doc.pdf", ContentType: "application/pdf",
	})
	assert.True(t, errors.Is(err, ErrValidation))

	// presign failure falls back to the object name
	f.storage.presign = errors.New("minio down")
	got, err := f.service.Movie.GetByID(ctx, movie.ID, "")
	require.NoError(t, err)
	assert.Equal(t, f.store.movies[movie.ID].PosterObject, got.PosterURL)
}

func TestMovieUploadImage_NoStorage(t *testing.T) {
	f := newFixture(t)
	f.storage = nil
	f.rebuild()
	movie := f.movie("Poster test", 90)

	_, err := f.service.Movie.UploadImage(context.Background(), movie.ID, ImagePoster, ImageUpload{
		Reader: strings.NewReader("x"), Filename: "a.jpg", ContentType: "image/jpeg",
	})
	assert.True(t, errors.Is(err, ErrInvalidOperation))
}

func TestTheatreCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.Theatre.Create(ctx, &request.TheatreRequest{Name: "CinemaPlus", Address: "Ganjlik Mall", City: "Baku"})
	require.NoError(t, err)
	_, err = f.service.Theatre.Create(ctx, &request.TheatreRequest{Name: "Nizami", Address: "Rashid Behbudov", City: "Ganja"})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)
	f.hall(id, 1, 1)

	city := "baku"
	list, err := f.service.Theatre.List(ctx, &request.PaginatedRequest{Page: 1, PerPage: 10}, &city)
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "CinemaPlus", list.Data[0].Name)

	detail, err := f.service.Theatre.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Len(t, detail.Halls, 1)

	updated, err := f.service.Theatre.Update(ctx, id, &request.TheatreUpdateRequest{City: strPtr("Sumqayit")})
	require.NoError(t, err)
	assert.Equal(t, "Sumqayit", updated.City)
	assert.Equal(t, "CinemaPlus", updated.Name)

	require.NoError(t, f.service.Theatre.Delete(ctx, id))
	_, err = f.service.Theatre.GetByID(ctx, id)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestShowTimeCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	theatre := f.theatre("Park Cinema")
	hall, _ := f.hall(theatre.ID, 2, 2)
	movie := f.movie("Runner", 110)

	st, err := f.service.ShowTime.Create(ctx, &request.ShowTimeRequest{
		MovieID:   movie.ID.String(),
		HallID:    hall.ID.String(),
		StartTime: "2025-03-01T19:00:00Z",
		BasePrice: 12.5,
	})
	require.NoError(t, err)
	assert.Equal(t, 110*time.Minute, st.EndTime.Sub(st.StartTime))
	assert.Equal(t, "Runner", st.MovieTitle)
	assert.Equal(t, hall.Name, st.HallName)
	assert.Equal(t, theatre.ID.String(), st.TheatreID)

	tests := []struct {
		name string
		req  *request.ShowTimeRequest
		want error
	}{
		{
			name: "end before start",
			req: &request.ShowTimeRequest{
				MovieID: movie.ID.String(), HallID: hall.ID.String(),
				StartTime: "2025-03-01T19:00:00Z", EndTime: strPtr("2025-03-01T18:00:00Z"),
			},
			want: ErrValidation,
		},
		{
			name: "negative price",
			req: &request.ShowTimeRequest{
				MovieID: movie.ID.String(), HallID: hall.ID.String(),
				StartTime: "2025-03-01T19:00:00Z", BasePrice: -1,
			},
			want: ErrValidation,
		},
		{
			name: "unknown movie",
			req: &request.ShowTimeRequest{
				MovieID: uuid.NewString(), HallID: hall.ID.String(), StartTime: "2025-03-01T19:00:00Z",
			},
			want: ErrNotFound,
		},
		{
			name: "unknown hall",
			req: &request.ShowTimeRequest{
				MovieID: movie.ID.String(), HallID: uuid.NewString(), StartTime: "2025-03-01T19:00:00Z",
			},
			want: ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.ShowTime.Create(ctx, tt.req)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestShowTimeList_ByDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	theatre := f.theatre("Park Cinema")
	hall, _ := f.hall(theatre.ID, 1, 1)
	movie := f.movie("Runner", 110)

	for _, start := range []string{"2025-03-01T10:00:00Z", "2025-03-01T22:00:00Z", "2025-03-02T10:00:00Z"} {
		_, err := f.service.ShowTime.Create(ctx, &request.ShowTimeRequest{
			MovieID: movie.ID.String(), HallID: hall.ID.String(), StartTime: start,
		})
		require.NoError(t, err)
	}

	movieID := movie.ID.String()
	list, err := f.service.ShowTime.List(ctx, &request.ShowTimeListQuery{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
		MovieID:          &movieID,
		Date:             strPtr("2025-03-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Pagination.Total)
	require.Len(t, list.Data, 2)
	assert.True(t, list.Data[0].StartTime.Before(list.Data[1].StartTime))
}

func TestShowTimeUpdate_ImmutableOnceSold(t *testing.T) {
	s := newBookingScene(t)
	ctx := context.Background()

	moved, err := s.service.ShowTime.Update(ctx, s.showTime.ID, &request.ShowTimeUpdateRequest{
		StartTime: strPtr("2025-03-01T20:00:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, moved.EndTime.Sub(moved.StartTime))

	_, err = s.book(s.seats[0])
	require.NoError(t, err)

	price := 15.0
	_, err = s.service.ShowTime.Update(ctx, s.showTime.ID, &request.ShowTimeUpdateRequest{BasePrice: &price})
	assert.True(t, errors.Is(err, ErrInvalidOperation))
	assert.True(t, errors.Is(s.service.ShowTime.Delete(ctx, s.showTime.ID), ErrInvalidOperation))
	assert.Equal(t, 10.0, s.store.showTimes[s.showTime.ID].BasePrice)
}

func TestWatchlist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID, _ := f.client(t)
	first := f.movie("First", 90)
	second := f.movie("Second", 90)

	item, err := f.service.Watchlist.Add(ctx, userID, &request.WatchlistRequest{MovieID: first.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "First", item.Movie.Title)

	_, err = f.service.Watchlist.Add(ctx, userID, &request.WatchlistRequest{MovieID: first.ID.String()})
	assert.True(t, errors.Is(err, ErrConflict))

	_, err = f.service.Watchlist.Add(ctx, userID, &request.WatchlistRequest{MovieID: uuid.NewString()})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = f.service.Watchlist.Add(ctx, userID, &request.WatchlistRequest{MovieID: second.ID.String()})
	require.NoError(t, err)

	// soft-deleted movies drop out of the list
	require.NoError(t, f.service.Movie.Delete(ctx, second.ID))
	items, err := f.service.Watchlist.List(ctx, userID, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, first.ID.String(), items[0].Movie.ID)

	require.NoError(t, f.service.Watchlist.Remove(ctx, userID, first.ID))
	assert.True(t, errors.Is(f.service.Watchlist.Remove(ctx, userID, first.ID), ErrNotFound))
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	registered, err := f.service.Auth.Register(ctx, &request.RegisterRequest{
		Email:    "Nigar@Example.com",
		Password: "secret1",
		Name:     "Nigar",
		Surname:  "Mammadova",
	})
	require.NoError(t, err)
	assert.Equal(t, "nigar@example.com", registered.Email)
	assert.Len(t, f.store.clients, 1)

	userID, role, err := f.tokens.Parse(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, userID.String())
	assert.Equal(t, "client", role)

	_, err = f.service.Auth.Register(ctx, &request.RegisterRequest{
		Email: "nigar@example.com", Password: "secret2", Name: "N", Surname: "M",
	})
	assert.True(t, errors.Is(err, ErrConflict))

	_, err = f.service.Auth.Login(ctx, &request.LoginRequest{Email: "nigar@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = f.service.Auth.Login(ctx, &request.LoginRequest{Email: "nigar@example.com", Password: "wrong-pass"})
	assert.True(t, errors.Is(err, ErrUnauthorized))

	profile, err := f.service.Client.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Mammadova", profile.Surname)
}

func TestRegister_RollbackWhenProfileFails(t *testing.T) {
	f := newFixture(t)
	f.store.fail["client.create"] = errors.New("constraint")

	_, err := f.service.Auth.Register(context.Background(), &request.RegisterRequest{
		Email: "a@example.com", Password: "secret1", Name: "A", Surname: "B",
	})
	require.Error(t, err)
	assert.Empty(t, f.store.users)
}

package movie

import "moviedex/errs"

// MaxPages is the deepest page the provider will serve.
const MaxPages = 500

var (
	ErrInvalidQuery  = errs.Errorf(errs.EINVALID, "invalid search query")
	ErrInvalidID     = errs.Errorf(errs.EINVALID, "invalid movie id")
	ErrInvalidSort   = errs.Errorf(errs.EINVALID, "invalid sort option")
	ErrInvalidRegion = errs.Errorf(errs.EINVALID, "invalid region code")
	ErrNotFound      = errs.Errorf(errs.ENOTFOUND, "movie not found")
)

// Movie is a list entry as returned by discover, trending and search.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date"`
	GenreIDs     []int   `json:"genre_ids"`
}

type Page struct {
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
	Results      []Movie `json:"results"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type SpokenLanguage struct {
	EnglishName string `json:"english_name"`
	ISO6391     string `json:"iso_639_1"`
	Name        string `json:"name"`
}

type ProductionCompany struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	LogoPath      string `json:"logo_path"`
	OriginCountry string `json:"origin_country"`
}

type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

type CrewMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}

type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type Videos struct {
	Results []Video `json:"results"`
}

// Detail is a single movie with credits and videos appended.
type Detail struct {
	ID                  int                 `json:"id"`
	Title               string              `json:"title"`
	Overview            string              `json:"overview"`
	PosterPath          string              `json:"poster_path"`
	BackdropPath        string              `json:"backdrop_path"`
	VoteAverage         float64             `json:"vote_average"`
	ReleaseDate         string              `json:"release_date"`
	Runtime             int                 `json:"runtime"`
	Genres              []Genre             `json:"genres"`
	Status              string              `json:"status"`
	Tagline             string              `json:"tagline"`
	Budget              int64               `json:"budget"`
	Revenue             int64               `json:"revenue"`
	SpokenLanguages     []SpokenLanguage    `json:"spoken_languages"`
	ProductionCompanies []ProductionCompany `json:"production_companies"`
	Credits             Credits             `json:"credits"`
	Videos              Videos              `json:"videos"`
}

// Trailers returns the YouTube trailers, official ones first.
func (d Detail) Trailers() []Video {
	var official, others []Video
	for _, v := range d.Videos.Results {
		if v.Site != "YouTube" || v.Type != "Trailer" {
			continue
		}
		if v.Official {
			official = append(official, v)
		} else {
			others = append(others, v)
		}
	}
	return append(official, others...)
}

type WatchProvider struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path"`
}

// WatchProviders lists where a movie can be streamed, rented or bought in one region.
type WatchProviders struct {
	Region   string          `json:"region"`
	Link     string          `json:"link"`
	Flatrate []WatchProvider `json:"flatrate"`
	Rent     []WatchProvider `json:"rent"`
	Buy      []WatchProvider `json:"buy"`
}

// DiscoverQuery filters the discover listing. Zero values mean "no filter".
type DiscoverQuery struct {
	Page      int
	SortBy    string
	GenreID   int
	Year      int
	MinRating float64
}

package moviedb

// MovieSummary is the catalogue card: an immutable snapshot from the API,
// never mutated locally.
type MovieSummary struct {
	ID     int      `json:"id"`
	Title  string   `json:"title"`
	Year   int      `json:"year"`
	Image  string   `json:"image"`
	Genres []string `json:"genres"`
	Rating float64  `json:"rating"`
}

// CastMember is a person reference plus their role in one movie.
type CastMember struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character,omitempty"`
}

type MovieDetail struct {
	MovieSummary
	Directors        []CastMember   `json:"directors"`
	Writers          []CastMember   `json:"writers"`
	Actors           []CastMember   `json:"actors"`
	PlotFull         string         `json:"plot_full"`
	ShortDescription string         `json:"short_description"`
	Similar          []MovieSummary `json:"similar"`
}

type Review struct {
	ID      int     `json:"id"`
	Author  string  `json:"author"`
	Rating  float64 `json:"rating"`
	Title   string  `json:"title"`
	Body    string  `json:"body"`
	Date    string  `json:"date"`
	Spoiler bool    `json:"spoiler"`
}

type Person struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Role      string         `json:"role"`
	Image     string         `json:"image"`
	Biography string         `json:"biography"`
	BirthDate string         `json:"birth_date"`
	DeathDate string         `json:"death_date"`
	KnownFor  []MovieSummary `json:"known_for"`
}

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	DOB      string `json:"dob"`
}

// Credentials is what a successful login yields. User and Token travel
// together: one is never persisted without the other.
type Credentials struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	DOB      string `json:"dob,omitempty"`
}

// ProfilePatch carries only the fields being changed.
type ProfilePatch struct {
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	DOB   *string `json:"dob,omitempty"`
}

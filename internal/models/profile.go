package models

// DefaultAvatar is the avatar label every new profile starts with
const DefaultAvatar = "The Seeker"

// QuizStatus is the completion state of a single quiz
type QuizStatus string

const (
	QuizNotStarted QuizStatus = "not-started"
	QuizCompleted  QuizStatus = "completed"
)

// ProfileRecord is the single persisted progress record of a visitor
type ProfileRecord struct {
	User         ProfileUser             `json:"user"`
	Gamification Gamification            `json:"gamification"`
	QuizProgress map[QuizID]QuizProgress `json:"quizProgress"`
}

// ProfileUser holds the visitor's identity fields. Name is nil until the
// profile form has been submitted.
type ProfileUser struct {
	Name   *string `json:"name"`
	Avatar string  `json:"avatar"`
}

// Gamification holds points and the ordered set of earned badges
type Gamification struct {
	Points int       `json:"points"`
	Badges []BadgeID `json:"badges"`
}

// QuizProgress tracks one quiz
type QuizProgress struct {
	Status QuizStatus `json:"status"`
}

// NewProfileRecord returns the record used when nothing is stored yet
func NewProfileRecord() ProfileRecord {
	progress := make(map[QuizID]QuizProgress, len(QuizCatalog))
	for _, quiz := range QuizCatalog {
		progress[quiz.ID] = QuizProgress{Status: QuizNotStarted}
	}
	return ProfileRecord{
		User:         ProfileUser{Avatar: DefaultAvatar},
		Gamification: Gamification{Badges: []BadgeID{}},
		QuizProgress: progress,
	}
}

// Normalize fills fields a partially written record may lack. It never
// removes data.
func (r *ProfileRecord) Normalize() {
	if r.User.Avatar == "" {
		r.User.Avatar = DefaultAvatar
	}
	if r.Gamification.Badges == nil {
		r.Gamification.Badges = []BadgeID{}
	}
	if r.Gamification.Points < 0 {
		r.Gamification.Points = 0
	}
	if r.QuizProgress == nil {
		r.QuizProgress = make(map[QuizID]QuizProgress, len(QuizCatalog))
	}
	for _, quiz := range QuizCatalog {
		if p, ok := r.QuizProgress[quiz.ID]; !ok || p.Status == "" {
			r.QuizProgress[quiz.ID] = QuizProgress{Status: QuizNotStarted}
		}
	}
}

// HasName reports whether the visitor has entered a name
func (r ProfileRecord) HasName() bool {
	return r.User.Name != nil && *r.User.Name != ""
}

// DisplayName returns the name or an empty string
func (r ProfileRecord) DisplayName() string {
	if r.User.Name == nil {
		return ""
	}
	return *r.User.Name
}

// SetName stores the visitor's name
func (r *ProfileRecord) SetName(name string) {
	r.User.Name = &name
}

// HasBadge reports whether the badge has been earned
func (r ProfileRecord) HasBadge(id BadgeID) bool {
	for _, badge := range r.Gamification.Badges {
		if badge == id {
			return true
		}
	}
	return false
}

// AwardBadge appends the badge and adds points unless the badge is already
// held. It returns true when the award happened.
func (r *ProfileRecord) AwardBadge(id BadgeID, points int) bool {
	if r.HasBadge(id) {
		return false
	}
	r.Gamification.Badges = append(r.Gamification.Badges, id)
	if points > 0 {
		r.Gamification.Points += points
	}
	return true
}

// QuizStatus returns the status of a quiz, not-started if unknown
func (r ProfileRecord) QuizStatus(id QuizID) QuizStatus {
	if p, ok := r.QuizProgress[id]; ok && p.Status != "" {
		return p.Status
	}
	return QuizNotStarted
}

// MarkQuizCompleted moves the quiz to completed. There is no way back.
func (r *ProfileRecord) MarkQuizCompleted(id QuizID) {
	if r.QuizProgress == nil {
		r.QuizProgress = make(map[QuizID]QuizProgress)
	}
	r.QuizProgress[id] = QuizProgress{Status: QuizCompleted}
}

// AnyQuizCompleted reports whether at least one catalog quiz is completed
func (r ProfileRecord) AnyQuizCompleted() bool {
	for _, quiz := range QuizCatalog {
		if r.QuizStatus(quiz.ID) == QuizCompleted {
			return true
		}
	}
	return false
}

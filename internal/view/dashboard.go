package view

import (
	"bytes"
	"context"
	"html/template"
	"log"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"shikshanam/internal/fragment"
	"shikshanam/internal/models"
)

var badgeGridTmpl = template.Must(template.New("badges").Parse(
	`{{range .}}<div class="badge-card {{if .Unlocked}}unlocked{{else}}locked{{end}}" data-badge="{{.ID}}">` +
		`<div class="badge-icon"><i class="{{.Icon}}"></i></div><h4>{{.Title}}</h4><p>{{.Description}}</p></div>{{end}}`))

var quizGridTmpl = template.Must(template.New("quizzes").Parse(
	`{{range .}}<div class="quiz-card {{.ID}}" data-quiz="{{.ID}}">` +
		`{{if .Completed}}<div class="completed-overlay"><i class="fa-solid fa-check-circle"></i><span>Completed</span></div>{{end}}` +
		`<div class="quiz-icon"><i class="{{.Icon}}"></i></div><h4 class="quiz-title">{{.Title}}</h4>` +
		`<p class="quiz-description">{{.Description}}</p>` +
		`<form class="quiz-launch"><button class="btn-quiz" type="submit"><span>{{.ButtonLabel}}</span><i class="fa-solid fa-arrow-right"></i></button></form>` +
		`</div>{{end}}`))

const journeySummaryHTML = `<div class="results-summary"><h4>Your Journey Insights</h4>` +
	`<p>You've begun to explore your inner world. Revisit your results or take another quiz to deepen your understanding.</p></div>`

const journeyPlaceholderHTML = `<div class="journey-results-placeholder"><i class="fa-solid fa-lightbulb"></i>` +
	`<p>Complete a quiz to see your personalized recommendations here.</p></div>`

type badgeCard struct {
	models.Badge
	Unlocked bool
}

type quizCard struct {
	models.Quiz
	Completed bool
}

// RenderDashboard loads the dashboard fragment and fills it from record
func (c *Composer) RenderDashboard(ctx context.Context, page *fragment.Page, record models.ProfileRecord, visit Visit) {
	page.Update(func(doc *goquery.Document) {
		doc.Find("#" + DashboardContainer).Empty()
	})

	if !c.loader.Load(ctx, page, DashboardContainer, DashboardFragment, c.hooks(visit)) {
		return
	}

	badges, err := renderBadgeGrid(record)
	if err != nil {
		log.Printf("Error rendering badge grid: %v", err)
	}
	quizzes, err := renderQuizGrid(record)
	if err != nil {
		log.Printf("Error rendering quiz grid: %v", err)
	}

	journey := journeyPlaceholderHTML
	if record.AnyQuizCompleted() {
		journey = journeySummaryHTML
	}

	page.Update(func(doc *goquery.Document) {
		doc.Find("#user-name").SetText(record.DisplayName())
		doc.Find("#user-points").SetText(strconv.Itoa(record.Gamification.Points))
		doc.Find("#user-badges-count").SetText(strconv.Itoa(len(record.Gamification.Badges)))
		doc.Find("#badge-grid").SetHtml(badges)
		doc.Find("#quiz-grid").SetHtml(quizzes)
		doc.Find("#journey-path-container").SetHtml(journey)

		wireQuizLaunch(doc, visit.CSRFToken)
	})
}

func renderBadgeGrid(record models.ProfileRecord) (string, error) {
	cards := make([]badgeCard, 0, len(models.BadgeCatalog))
	for _, badge := range models.BadgeCatalog {
		cards = append(cards, badgeCard{Badge: badge, Unlocked: record.HasBadge(badge.ID)})
	}

	var buf bytes.Buffer
	if err := badgeGridTmpl.Execute(&buf, cards); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderQuizGrid(record models.ProfileRecord) (string, error) {
	cards := make([]quizCard, 0, len(models.QuizCatalog))
	for _, quiz := range models.QuizCatalog {
		cards = append(cards, quizCard{Quiz: quiz, Completed: record.QuizStatus(quiz.ID) == models.QuizCompleted})
	}

	var buf bytes.Buffer
	if err := quizGridTmpl.Execute(&buf, cards); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// wireQuizLaunch points every quiz card's launch form at its launch route
func wireQuizLaunch(doc *goquery.Document, csrfToken string) {
	for _, quiz := range models.QuizCatalog {
		card := doc.Find(`.quiz-card[data-quiz="` + string(quiz.ID) + `"]`)
		form := card.Find("form.quiz-launch").First()
		if form.Length() == 0 {
			continue
		}
		form.SetAttr("action", LaunchPath(quiz.ID))
		form.SetAttr("method", "post")
		appendCSRFField(form, csrfToken)
	}
}

// LaunchPath is the route that starts a quiz session
func LaunchPath(id models.QuizID) string {
	return "/quiz/" + string(id) + "/launch"
}

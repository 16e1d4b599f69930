package view

import (
	"context"
	"html"

	"github.com/PuerkitoBio/goquery"
	"github.com/sourcegraph/conc"

	"shikshanam/internal/fragment"
	"shikshanam/internal/models"
	"shikshanam/internal/storage"
)

// CSRFFieldName is the hidden form field carrying the CSRF token
const CSRFFieldName = "csrf_token"

// Mount points of the host document
const (
	HeaderContainer    = "header-container"
	FooterContainer    = "footer-container"
	DashboardContainer = "dashboard-container"
	HomepageContainer  = "homepage-sections"
	HeroContainer      = "hero-container"
)

// Fragment paths
const (
	HeaderFragment    = "components/header/header.html"
	FooterFragment    = "components/footer/footer.html"
	DashboardFragment = "sections/rishi-dashboard.html"
)

// Section is a homepage fragment and the container it mounts into
type Section struct {
	ContainerID string
	Fragment    string
}

// HomepageSections are loaded together whenever the homepage is shown
var HomepageSections = []Section{
	{ContainerID: HeroContainer, Fragment: "sections/hero.html"},
	{ContainerID: "rishi-mode-container", Fragment: "sections/rishi-mode.html"},
	{ContainerID: "masterclasses-container", Fragment: "sections/free-masterclasses.html"},
	{ContainerID: "premium-courses-container", Fragment: "sections/premium-courses.html"},
	{ContainerID: "darshanas-container", Fragment: "sections/the-six-darshanas.html"},
	{ContainerID: "sangha-container", Fragment: "sections/join-the-sangha.html"},
	{ContainerID: "insights-container", Fragment: "sections/latest-insights.html"},
	{ContainerID: "team-container", Fragment: "sections/wisdom-keepers.html"},
	{ContainerID: "contributors-container", Fragment: "sections/contributors.html"},
}

// View is the top-level view a composed page shows
type View int

const (
	ViewHomepage View = iota
	ViewDashboard
	ViewQuizActive
)

func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "dashboard"
	case ViewQuizActive:
		return "quiz-active"
	default:
		return "homepage"
	}
}

// Visit carries the per-request inputs of a composition
type Visit struct {
	VisitorID string
	CSRFToken string
	Header    HeaderState
}

// Composer builds pages from the host document, fragments and the visitor's
// profile record
type Composer struct {
	loader *fragment.Loader
	store  *storage.ProfileStore
	shell  []byte
}

// NewComposer creates a composer. shell is the host document markup.
func NewComposer(loader *fragment.Loader, store *storage.ProfileStore, shell []byte) *Composer {
	return &Composer{
		loader: loader,
		store:  store,
		shell:  shell,
	}
}

// NewPage returns a fresh copy of the host document
func (c *Composer) NewPage() (*fragment.Page, error) {
	return fragment.NewPage(c.shell)
}

// InitializeApp derives the whole page from the persisted record: header,
// then dashboard or homepage depending on whether a name is set, then footer.
func (c *Composer) InitializeApp(ctx context.Context, page *fragment.Page, visit Visit) (View, models.ProfileRecord) {
	record := c.store.Load(ctx, visit.VisitorID)

	c.loader.Load(ctx, page, HeaderContainer, HeaderFragment, c.hooks(visit))
	page.Update(func(doc *goquery.Document) {
		wireHeader(doc, visit.Header)
	})

	view := ViewHomepage
	if record.HasName() {
		view = ViewDashboard
		page.Update(func(doc *goquery.Document) {
			setDisplay(doc, HomepageContainer, false)
			setDisplay(doc, DashboardContainer, true)
		})
		c.RenderDashboard(ctx, page, record, visit)
	} else {
		page.Update(func(doc *goquery.Document) {
			setDisplay(doc, DashboardContainer, false)
			setDisplay(doc, HomepageContainer, true)
		})
		c.LoadHomepageSections(ctx, page, visit)
	}

	c.loader.Load(ctx, page, FooterContainer, FooterFragment, c.hooks(visit))
	return view, record
}

// LoadHomepageSections loads every homepage section concurrently and wires
// the profile form once all of them have finished.
func (c *Composer) LoadHomepageSections(ctx context.Context, page *fragment.Page, visit Visit) {
	hooks := c.hooks(visit)

	var wg conc.WaitGroup
	for _, section := range HomepageSections {
		wg.Go(func() {
			c.loader.Load(ctx, page, section.ContainerID, section.Fragment, hooks)
		})
	}
	wg.Wait()

	page.Update(func(doc *goquery.Document) {
		wireProfileForm(doc, visit.CSRFToken)
	})
}

// NavigateToHomepage leaves any quiz or dashboard view and shows the
// homepage. Sections are only fetched when the hero container is empty.
func (c *Composer) NavigateToHomepage(ctx context.Context, page *fragment.Page, visit Visit) {
	page.Update(func(doc *goquery.Document) {
		clearQuizState(doc)
		setDisplay(doc, DashboardContainer, false)
		setDisplay(doc, HomepageContainer, true)
	})

	if page.IsEmpty(HeroContainer) {
		c.LoadHomepageSections(ctx, page, visit)
	}
}

// LaunchQuiz switches the page into quiz mode and mounts the quiz fragment.
// The fragment reaches completionURL through its quiz-completion hook: a form
// posts to it directly, any other element carries the URL and CSRF token as
// data attributes for the quiz's own script.
func (c *Composer) LaunchQuiz(ctx context.Context, page *fragment.Page, quiz models.Quiz, completionURL string, visit Visit) bool {
	page.Update(func(doc *goquery.Document) {
		doc.Find("body").AddClass("quiz-active")
	})

	hooks := c.hooks(visit)
	hooks["quiz-completion"] = func(sel *goquery.Selection) {
		if goquery.NodeName(sel) == "form" {
			sel.SetAttr("action", completionURL)
			sel.SetAttr("method", "post")
			appendCSRFField(sel, visit.CSRFToken)
			return
		}
		sel.SetAttr("data-complete-url", completionURL)
		if visit.CSRFToken != "" {
			sel.SetAttr("data-csrf-token", visit.CSRFToken)
		}
	}

	return c.loader.Load(ctx, page, quiz.ContainerID, quiz.Fragment, hooks)
}

// CurrentView reports which top-level view the page shows
func CurrentView(page *fragment.Page) View {
	view := ViewHomepage
	page.Update(func(doc *goquery.Document) {
		if doc.Find("body").HasClass("quiz-active") {
			view = ViewQuizActive
			return
		}
		if style, _ := doc.Find("#" + DashboardContainer).Attr("style"); style == "display: block;" {
			view = ViewDashboard
		}
	})
	return view
}

// hooks returns the init hooks every fragment may use
func (c *Composer) hooks(visit Visit) fragment.Hooks {
	return fragment.Hooks{
		"csrf": func(sel *goquery.Selection) {
			appendCSRFField(sel, visit.CSRFToken)
		},
	}
}

func clearQuizState(doc *goquery.Document) {
	doc.Find("body").RemoveClass("quiz-active")
	for _, quiz := range models.QuizCatalog {
		doc.Find("#" + quiz.ContainerID).Empty()
	}
}

func setDisplay(doc *goquery.Document, id string, visible bool) {
	value := "display: none;"
	if visible {
		value = "display: block;"
	}
	doc.Find("#"+id).SetAttr("style", value)
}

func appendCSRFField(sel *goquery.Selection, token string) {
	if token == "" || sel.Find(`input[name="`+CSRFFieldName+`"]`).Length() > 0 {
		return
	}
	sel.AppendHtml(`<input type="hidden" name="` + CSRFFieldName + `" value="` + html.EscapeString(token) + `">`)
}

// wireProfileForm points the Rishi Mode profile form at the profile route.
// A page without the form is left alone.
func wireProfileForm(doc *goquery.Document, csrfToken string) {
	form := doc.Find("#rishi-mode .profile-form form").First()
	if form.Length() == 0 {
		return
	}
	form.SetAttr("action", "/profile")
	form.SetAttr("method", "post")
	appendCSRFField(form, csrfToken)
}

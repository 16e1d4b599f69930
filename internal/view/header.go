package view

import (
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"
)

// ScrollThreshold is the offset past which the header is marked scrolled
const ScrollThreshold = 50

// HeaderState is the interactive state of the site header. At most one
// dropdown is open at a time. Path is the page the header is rendered on;
// toggling a dropdown stays on that page.
type HeaderState struct {
	Path     string
	OpenMenu string
	ScrollY  int
}

// Toggle opens menuID and closes every other dropdown. Toggling the menu
// that is already open closes everything.
func (h HeaderState) Toggle(menuID string) HeaderState {
	if h.OpenMenu == menuID {
		h.OpenMenu = ""
		return h
	}
	h.OpenMenu = menuID
	return h
}

// CloseAll closes every dropdown
func (h HeaderState) CloseAll() HeaderState {
	h.OpenMenu = ""
	return h
}

// Scrolled reports whether the header gets the scrolled flag
func (h HeaderState) Scrolled() bool {
	return h.ScrollY > ScrollThreshold
}

// ParseHeaderState reads header interaction from a request URL. open is the
// currently open menu and toggle the trigger just clicked. A request without
// toggle is a click outside any trigger and closes all dropdowns.
func ParseHeaderState(u *url.URL) HeaderState {
	q := u.Query()
	state := HeaderState{Path: u.Path, OpenMenu: q.Get("open")}
	if y, err := strconv.Atoi(q.Get("scroll")); err == nil && y > 0 {
		state.ScrollY = y
	}

	toggle := q.Get("toggle")
	if toggle == "" {
		return state.CloseAll()
	}
	return state.Toggle(toggle)
}

// ToggleURL is the link a dropdown trigger follows
func (h HeaderState) ToggleURL(menuID string) string {
	q := url.Values{}
	if h.OpenMenu != "" {
		q.Set("open", h.OpenMenu)
	}
	q.Set("toggle", menuID)
	if h.ScrollY > 0 {
		q.Set("scroll", strconv.Itoa(h.ScrollY))
	}
	path := h.Path
	if path == "" {
		path = "/"
	}
	return path + "?" + q.Encode()
}

// wireHeader applies header state to a mounted header fragment
func wireHeader(doc *goquery.Document, state HeaderState) {
	container := doc.Find("#" + HeaderContainer).First()
	if container.Length() == 0 {
		return
	}

	container.Find(".logo").SetAttr("href", "/home")

	header := container.Find("header")
	if state.Scrolled() {
		header.AddClass("scrolled")
	} else {
		header.RemoveClass("scrolled")
	}

	doc.Find(".nav-item-dropdown").RemoveClass("active-link")
	menus := container.Find(".mega-menu")
	menus.RemoveClass("show")

	container.Find(".nav-link-dropdown").Each(func(_ int, toggle *goquery.Selection) {
		menuID, ok := toggle.Attr("data-menu")
		if !ok || menuID == "" {
			return
		}
		toggle.SetAttr("href", state.ToggleURL(menuID))

		if menuID != state.OpenMenu {
			return
		}
		toggle.Closest(".nav-item-dropdown").AddClass("active-link")
		menus.Each(func(_ int, menu *goquery.Selection) {
			if content, _ := menu.Attr("data-menu-content"); content == menuID {
				menu.AddClass("show")
			}
		})
	})
}

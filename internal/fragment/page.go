package fragment

import (
	"bytes"
	"fmt"
	"log"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// HookAttr marks an element inside a fragment that wants an init hook run
// after the fragment is mounted. The attribute value names the hook.
const HookAttr = "data-hook"

// Hook initializes an element of a freshly mounted fragment
type Hook func(sel *goquery.Selection)

// Hooks maps hook names to their implementations
type Hooks map[string]Hook

// Page is a host document being composed. Mounts may run concurrently.
type Page struct {
	mu  sync.Mutex
	doc *goquery.Document
}

// NewPage parses the host document
func NewPage(shell []byte) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(shell))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return &Page{doc: doc}, nil
}

// Update runs fn with exclusive access to the document.
// fn must not call back into the page.
func (p *Page) Update(fn func(doc *goquery.Document)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p.doc)
}

// Mount replaces the content of the element with the given id and runs the
// hooks declared inside the new content. It returns false if no such
// element exists.
func (p *Page) Mount(containerID, markup string, hooks Hooks) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	container := p.doc.Find("#" + containerID).First()
	if container.Length() == 0 {
		return false
	}
	container.SetHtml(markup)

	container.Find("[" + HookAttr + "]").Each(func(_ int, el *goquery.Selection) {
		name, _ := el.Attr(HookAttr)
		hook, ok := hooks[name]
		if !ok {
			log.Printf("No init hook registered for %q in #%s", name, containerID)
			return
		}
		hook(el)
	})
	return true
}

// IsEmpty reports whether the element has no non-whitespace content.
// A missing element counts as empty.
func (p *Page) IsEmpty(containerID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	container := p.doc.Find("#" + containerID).First()
	if container.Length() == 0 {
		return true
	}
	html, err := container.Html()
	if err != nil {
		return true
	}
	return len(bytes.TrimSpace([]byte(html))) == 0
}

// HTML renders the composed document
func (p *Page) HTML() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return goquery.OuterHtml(p.doc.Selection)
}

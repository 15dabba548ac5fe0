package wiki

import (
	"context"
	"fmt"
	"sync"
)

// fakeService is an in-memory wiki that counts remote calls.
type fakeService struct {
	mu sync.Mutex

	pages     map[string]*Page // by id and by title
	labels    map[string][]string
	children  []Summary
	redirects map[string]string

	failPages bool
	failLogin int // number of logins that fail before one succeeds

	pageCalls, labelCalls, loginCalls, redirectCalls int
	tokens                                           []string
}

func newFakeService() *fakeService {
	return &fakeService{
		pages:     make(map[string]*Page),
		labels:    make(map[string][]string),
		redirects: make(map[string]string),
	}
}

func (f *fakeService) addPage(id, title, url string, labels ...string) {
	p := &Page{ID: id, Title: title, URL: url, Content: "{excerpt}" + title + "{excerpt}"}
	f.pages[id] = p
	f.pages[title] = p
	f.labels[id] = labels
	f.children = append(f.children, Summary{ID: id, Title: title, URL: url})
}

func (f *fakeService) FetchPage(_ context.Context, idOrTitle string) (*Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageCalls++
	if f.failPages {
		return nil, fmt.Errorf("wiki unavailable")
	}
	p, ok := f.pages[idOrTitle]
	if !ok {
		return nil, fmt.Errorf("no page %q", idOrTitle)
	}
	cp := *p
	return &cp, nil
}

func (f *fakeService) FetchLabels(_ context.Context, pageID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.labelCalls++
	return f.labels[pageID], nil
}

func (f *fakeService) FetchChildren(context.Context, string) ([]Summary, error) {
	return f.children, nil
}

func (f *fakeService) Login(context.Context, string, string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	if f.failLogin > 0 {
		f.failLogin--
		return "", fmt.Errorf("login refused")
	}
	return "JSESSIONID=abc", nil
}

func (f *fakeService) ResolveRedirect(_ context.Context, token, shortURL string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.redirectCalls++
	f.tokens = append(f.tokens, token)
	target, ok := f.redirects[shortURL]
	if !ok {
		return "", fmt.Errorf("no redirect for %s", shortURL)
	}
	return target, nil
}

func (f *fakeService) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pageCalls + f.labelCalls + f.loginCalls + f.redirectCalls
}

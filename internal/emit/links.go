package emit

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

const (
	defaultLinkGroup = "site"
	defaultLinkRoute = "kata"

	// kataParam is the route parameter every kata route must declare.
	kataParam = "kata"
)

// LinkOptions configure the deep links recorded in the manifest. An empty
// BaseURL disables link generation. Routes replaces the generated
// single-group configuration when the host site carries its own go-urlkit
// route tree; Group and Route then select which route builds kata links.
type LinkOptions struct {
	BaseURL   string
	KataRoute string
	Group     string
	Route     string
	Routes    *urlkit.Config
}

// LinkResolver maps kata ids to site URLs. A nil resolver maps every id to
// the empty string.
type LinkResolver struct {
	group *urlkit.Group
	route string
}

// NewLinkResolver builds a resolver from the site options. It returns nil
// when neither a base URL nor a route override is configured.
func NewLinkResolver(opts LinkOptions) (*LinkResolver, error) {
	groupPath := strings.TrimSpace(opts.Group)
	if groupPath == "" {
		groupPath = defaultLinkGroup
	}
	route := strings.TrimSpace(opts.Route)
	if route == "" {
		route = defaultLinkRoute
	}

	cfg := opts.Routes
	if cfg == nil {
		base := strings.TrimSpace(opts.BaseURL)
		if base == "" {
			return nil, nil
		}
		kataRoute := strings.TrimSpace(opts.KataRoute)
		if kataRoute == "" {
			return nil, fmt.Errorf("emit: kata route is required when a base URL is set")
		}
		cfg = &urlkit.Config{
			Groups: []urlkit.GroupConfig{
				{
					Name:    groupPath,
					BaseURL: base,
					Paths:   map[string]string{route: kataRoute},
				},
			},
		}
	}

	group, err := resolveGroup(urlkit.NewRouteManager(cfg), groupPath)
	if err != nil {
		return nil, err
	}
	return &LinkResolver{group: group, route: route}, nil
}

// KataURL resolves the site deep link for one kata id.
func (r *LinkResolver) KataURL(id string) (string, error) {
	if r == nil || r.group == nil {
		return "", nil
	}
	builder, err := safeBuilder(r.group, r.route)
	if err != nil {
		return "", err
	}
	builder.WithParam(kataParam, id)
	return builder.Build()
}

// resolveGroup walks a dotted group path ("site.en") through the manager.
// go-urlkit panics on unknown groups, so lookups recover into errors.
func resolveGroup(manager *urlkit.RouteManager, path string) (*urlkit.Group, error) {
	parts := strings.Split(path, ".")
	current, err := lookupGroup(manager, parts[0])
	if err != nil {
		return nil, err
	}
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}
	return current, nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("emit: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("emit: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	if parent == nil {
		return nil, fmt.Errorf("emit: parent route group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("emit: child route group %q not found", name)
		}
	}()
	group = parent.Group(name)
	return group, err
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("emit: url builder for route %q: %v", route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

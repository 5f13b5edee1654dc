package domain

import "encoding/json"

var eventParent = ParentRef{Field: "event_id", Resource: "events", Label: "Event"}

var (
	Categories = Resource{
		Name:         "categories",
		Path:         "categories",
		Label:        "Category",
		IDField:      "category_id",
		SearchFields: []string{"category_name", "description"},
		UniqueFields: []string{"category_name"},
		SortFields:   []string{"category_name"},
	}

	SubCategories = Resource{
		Name:         "sub_categories",
		Path:         "sub-categories",
		Label:        "Sub category",
		IDField:      "sub_category_id",
		SearchFields: []string{"sub_category_name"},
		Scopes:       []ScopeParam{{Query: "category_id", Field: "category_id"}},
		Parents:      []ParentRef{{Field: "category_id", Resource: "categories", Label: "Category"}},
	}

	Countries = Resource{
		Name:         "countries",
		Path:         "countries",
		Label:        "Country",
		IDField:      "country_id",
		SearchFields: []string{"country_name", "iso_code"},
		UniqueFields: []string{"iso_code"},
		SortFields:   []string{"country_name"},
	}

	States = Resource{
		Name:         "states",
		Path:         "states",
		Label:        "State",
		IDField:      "state_id",
		SearchFields: []string{"state_name"},
		Scopes:       []ScopeParam{{Query: "country_id", Field: "country_id"}},
		SortFields:   []string{"state_name"},
	}

	Cities = Resource{
		Name:         "cities",
		Path:         "cities",
		Label:        "City",
		IDField:      "city_id",
		SearchFields: []string{"city_name"},
		Scopes: []ScopeParam{
			{Query: "state_id", Field: "state_id"},
			{Query: "country_id", Field: "country_id"},
		},
		StatusFilter: StatusLiteralTrue,
		Pagination:   PaginationShort,
		SortFields:   []string{"city_name"},
	}

	ItemCategories = Resource{
		Name:         "item_categories",
		Path:         "item-categories",
		Label:        "Item category",
		IDField:      "item_category_id",
		SearchFields: []string{"categorytxt"},
		StatusFilter: StatusWhenPresent,
		Pagination:   PaginationShort,
		Delete:       DeleteHard,
	}

	Items = Resource{
		Name:         "items",
		Path:         "items",
		Label:        "Item",
		IDField:      "item_id",
		SearchFields: []string{"item_name", "unit"},
		Scopes:       []ScopeParam{{Query: "item_category_id", Field: "item_category_id"}},
		StatusFilter: StatusWhenPresent,
		Pagination:   PaginationShort,
		Delete:       DeleteHard,
		SortFields:   []string{"item_name", "price", "quantity"},
		Parents:      []ParentRef{{Field: "item_category_id", Resource: "item_categories", Label: "Item category"}},
	}

	EventTypes = Resource{
		Name:         "event_types",
		Path:         "event-types",
		Label:        "Event type",
		IDField:      "event_type_id",
		SearchFields: []string{"event_type_name"},
	}

	Venues = Resource{
		Name:         "venues",
		Path:         "venues",
		Label:        "Venue",
		IDField:      "venue_id",
		SearchFields: []string{"venue_name", "address"},
		Scopes:       []ScopeParam{{Query: "city_id", Field: "city_id"}},
		SortFields:   []string{"venue_name", "capacity"},
	}

	Events = Resource{
		Name:         "events",
		Path:         "events",
		Label:        "Event",
		IDField:      "event_id",
		SearchFields: []string{"event_name", "description"},
		Scopes: []ScopeParam{
			{Query: "category_id", Field: "category_id"},
			{Query: "event_type_id", Field: "event_type_id"},
			{Query: "city_id", Field: "city_id"},
			{Query: "venue_id", Field: "venue_id"},
		},
		OwnerRoute:     "my-events",
		UpdateIDInPath: true,
		SortFields:     []string{"event_name", "start_date", "capacity"},
	}

	EventAmenities = Resource{
		Name:         "event_amenities",
		Path:         "event-amenities",
		Label:        "Event amenity",
		IDField:      "event_amenities_id",
		SearchFields: []string{"amenity_name"},
		Scopes:       []ScopeParam{{Query: "event_id", Field: "event_id"}},
		StatusFilter: StatusLiteralTrue,
		Pagination:   PaginationShort,
		Routes:       RoutesAll,
		Parents:      []ParentRef{eventParent},
	}

	EventEntryTickets = Resource{
		Name:         "event_entry_tickets",
		Path:         "event-entry-tickets",
		Label:        "Event entry ticket",
		IDField:      "event_entry_tickets_id",
		SearchFields: []string{"ticket_name"},
		Scopes:       []ScopeParam{{Query: "event_id", Field: "event_id"}},
		StatusFilter: StatusWhenPresent,
		Pagination:   PaginationShort,
		Delete:       DeleteHard,
		SortFields:   []string{"price", "ticket_name"},
		Parents:      []ParentRef{eventParent},
	}

	EventSetupRequirements = Resource{
		Name:         "event_setup_requirements",
		Path:         "event-setup-requirements",
		Label:        "Event setup requirement",
		IDField:      "event_setup_requirements_id",
		SearchFields: []string{"requirement"},
		Scopes:       []ScopeParam{{Query: "event_id", Field: "event_id"}},
		StatusFilter: StatusWhenPresent,
		Pagination:   PaginationShort,
		Delete:       DeleteHard,
		Parents:      []ParentRef{eventParent},
	}

	Tickets = Resource{
		Name:         "tickets",
		Path:         "tickets",
		Label:        "Ticket",
		IDField:      "ticket_id",
		SearchFields: []string{"attendee_name", "attendee_email"},
		Scopes: []ScopeParam{
			{Query: "event_id", Field: "event_id"},
			{Query: "event_entry_tickets_id", Field: "event_entry_tickets_id"},
		},
		OwnerRoute: "my-tickets",
		Parents: []ParentRef{
			eventParent,
			{Field: "event_entry_tickets_id", Resource: "event_entry_tickets", Label: "Event entry ticket"},
		},
	}

	Reviews = Resource{
		Name:         "reviews",
		Path:         "reviews",
		Label:        "Review",
		IDField:      "review_id",
		SearchFields: []string{"comment"},
		Scopes:       []ScopeParam{{Query: "event_id", Field: "event_id"}},
		OwnerRoute:   "getByAuth",
		SortFields:   []string{"rating"},
		Parents:      []ParentRef{eventParent},
	}

	GlobalSearch = Resource{
		Name:         "global_search",
		Path:         "global-search",
		Label:        "Global search entry",
		IDField:      "global_search_id",
		SearchFields: []string{"keyword", "title"},
		Scopes:       []ScopeParam{{Query: "entity_type", Field: "entity_type", Text: true}},
		Pagination:   PaginationShort,
		Routes:       RoutesAll,
	}

	CommunityDesigns = Resource{
		Name:         "community_designs",
		Path:         "community-designs",
		Label:        "Community design",
		IDField:      "community_designs_id",
		SearchFields: []string{"title", "description"},
		OwnerRoute:   "my-designs",
		SortFields:   []string{"likes", "title"},
		Defaults:     Fields{LikesField: json.Number("0")},
	}

	CommunityDesignLikes = Resource{
		Name:         "community_design_likes",
		Path:         "community-design-likes",
		Label:        "Community design like",
		IDField:      "community_design_likes_id",
		Scopes:       []ScopeParam{{Query: "community_designs_id", Field: "community_designs_id"}},
		StatusFilter: StatusWhenPresent,
		Pagination:   PaginationShort,
		Delete:       DeleteHard,
		OwnerRoute:   "getByAuth",
		Skip:         []Operation{OpCreate, OpUpdate, OpDelete},
	}

	FAQs = Resource{
		Name:         "faqs",
		Path:         "faqs",
		Label:        "FAQ",
		IDField:      "faq_id",
		SearchFields: []string{"question", "answer"},
		StatusFilter: StatusLiteralTrue,
		Routes:       RoutesAll,
		SortFields:   []string{"position"},
	}

	ContactEnquiries = Resource{
		Name:             "contact_enquiries",
		Path:             "contact-enquiries",
		Label:            "Contact enquiry",
		IDField:          "contact_enquiry_id",
		SearchFields:     []string{"name", "email", "subject"},
		PublicCreate:     true,
		DefaultCreatorID: 1,
	}
)

// LikesField is the counter on community designs maintained by likes.
const LikesField = "likes"

var catalog = []Resource{
	Categories, SubCategories, Countries, States, Cities,
	ItemCategories, Items, EventTypes, Venues, Events,
	EventAmenities, EventEntryTickets, EventSetupRequirements, Tickets, Reviews,
	GlobalSearch, CommunityDesigns, CommunityDesignLikes, FAQs, ContactEnquiries,
}

// Catalog returns every resource served by the API.
func Catalog() []Resource {
	out := make([]Resource, len(catalog))
	copy(out, catalog)
	return out
}

// Registry resolves resources by store name.
type Registry struct {
	byName map[string]Resource
}

func NewRegistry(resources ...Resource) *Registry {
	r := &Registry{byName: make(map[string]Resource, len(resources))}
	for _, res := range resources {
		r.byName[res.Name] = res
	}
	return r
}

// DefaultRegistry holds the full catalogue.
func DefaultRegistry() *Registry {
	return NewRegistry(catalog...)
}

func (r *Registry) Lookup(name string) (Resource, bool) {
	res, ok := r.byName[name]
	return res, ok
}

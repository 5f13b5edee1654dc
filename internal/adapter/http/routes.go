package http

import (
	"github.com/gorilla/mux"

	"github.com/eventhub/eventhub/infrastructure/http/middleware"
	"github.com/eventhub/eventhub/infrastructure/service/logger"
	"github.com/eventhub/eventhub/internal/domain"
)

// RouteRegistrar is anything that mounts routes on the API router.
type RouteRegistrar interface {
	RegisterRoutes(router *mux.Router)
}

// ResourceRoutes binds every catalogue resource to its request payloads.
func ResourceRoutes(service ResourceService, auth *middleware.AuthMiddleware, log logger.Logger) []RouteRegistrar {
	return []RouteRegistrar{
		NewResourceHandler[domain.CreateCategoryRequest, domain.UpdateCategoryRequest](domain.Categories, service, auth, log),
		NewResourceHandler[domain.CreateSubCategoryRequest, domain.UpdateSubCategoryRequest](domain.SubCategories, service, auth, log),
		NewResourceHandler[domain.CreateCountryRequest, domain.UpdateCountryRequest](domain.Countries, service, auth, log),
		NewResourceHandler[domain.CreateStateRequest, domain.UpdateStateRequest](domain.States, service, auth, log),
		NewResourceHandler[domain.CreateCityRequest, domain.UpdateCityRequest](domain.Cities, service, auth, log),
		NewResourceHandler[domain.CreateItemCategoryRequest, domain.UpdateItemCategoryRequest](domain.ItemCategories, service, auth, log),
		NewResourceHandler[domain.CreateItemRequest, domain.UpdateItemRequest](domain.Items, service, auth, log),
		NewResourceHandler[domain.CreateEventTypeRequest, domain.UpdateEventTypeRequest](domain.EventTypes, service, auth, log),
		NewResourceHandler[domain.CreateVenueRequest, domain.UpdateVenueRequest](domain.Venues, service, auth, log),
		NewResourceHandler[domain.CreateEventRequest, domain.UpdateEventRequest](domain.Events, service, auth, log),
		NewResourceHandler[domain.CreateEventAmenityRequest, domain.UpdateEventAmenityRequest](domain.EventAmenities, service, auth, log),
		NewResourceHandler[domain.CreateEventEntryTicketRequest, domain.UpdateEventEntryTicketRequest](domain.EventEntryTickets, service, auth, log),
		NewResourceHandler[domain.CreateEventSetupRequirementRequest, domain.UpdateEventSetupRequirementRequest](domain.EventSetupRequirements, service, auth, log),
		NewResourceHandler[domain.CreateTicketRequest, domain.UpdateTicketRequest](domain.Tickets, service, auth, log),
		NewResourceHandler[domain.CreateReviewRequest, domain.UpdateReviewRequest](domain.Reviews, service, auth, log),
		NewResourceHandler[domain.CreateGlobalSearchRequest, domain.UpdateGlobalSearchRequest](domain.GlobalSearch, service, auth, log),
		NewResourceHandler[domain.CreateCommunityDesignRequest, domain.UpdateCommunityDesignRequest](domain.CommunityDesigns, service, auth, log),
		// create and delete are served by DesignLikeHandler
		NewResourceHandler[domain.CreateCommunityDesignLikeRequest, domain.UpdateCommunityDesignLikeRequest](domain.CommunityDesignLikes, service, auth, log),
		NewResourceHandler[domain.CreateFAQRequest, domain.UpdateFAQRequest](domain.FAQs, service, auth, log),
		NewResourceHandler[domain.CreateContactEnquiryRequest, domain.UpdateContactEnquiryRequest](domain.ContactEnquiries, service, auth, log),
	}
}

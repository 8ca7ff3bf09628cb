package handlers

import (
	"net/http"

	"github.com/ingStudiosOfficial/supereddit/internal/utils"
)

// HandleSearch runs a case-insensitive substring search across posts
// (title, content) and subreddits (name, description). The type parameter
// selects categories; anything unrecognized behaves like "all". Each
// category is capped independently.
func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, utils.NewValidationError("Search query is required"))
		return
	}

	searchType := r.URL.Query().Get("type")
	if searchType != "posts" && searchType != "subreddits" {
		searchType = "all"
	}

	results := make(map[string]interface{})

	if searchType == "all" || searchType == "posts" {
		posts, err := s.Store.SearchPosts(r.Context(), query)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.Store.PopulatePosts(r.Context(), posts); err != nil {
			writeError(w, err)
			return
		}
		results["posts"] = posts
	}

	if searchType == "all" || searchType == "subreddits" {
		subreddits, err := s.Store.SearchSubreddits(r.Context(), query)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.Store.PopulateSubreddits(r.Context(), subreddits, false); err != nil {
			writeError(w, err)
			return
		}
		results["subreddits"] = subreddits
	}

	writeJSON(w, http.StatusOK, results)
}

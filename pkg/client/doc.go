// Package client is a Go client for the duodex article search API.
//
//	c, _ := client.New("http://localhost:8080")
//	res, _ := c.Search(ctx, client.SearchParams{
//	    Query:    "cricket",
//	    Language: client.LanguageSecondary,
//	    Limit:    10,
//	})
//	for _, a := range res.Articles {
//	    fmt.Println(a.Title, a.RelevanceScore)
//	}
//
// Absent text fields come back as nil pointers. Relevance scores and matched
// tiers are only set on results of a search with a non-empty query.
package client

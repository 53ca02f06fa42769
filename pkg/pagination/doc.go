// Package pagination assembles full Admin API collections across
// cursor-linked pages.
//
// The Admin REST API caps every list endpoint at 250 records per page and
// hands out a rel="next" cursor in the Link response header. The cursor
// embeds the original filters, so it replaces the query wholesale on
// follow-up requests.
//
// Example usage:
//
//	products := pagination.RESTCollection{Endpoint: "products.json", Key: "products"}
//	items, err := pagination.New(adminClient).FetchAll(ctx, products, nil)
//
// Pages are fetched strictly in sequence: each cursor comes only from the
// previous page's response, so there is no overlap or reordering. Each
// page fetch goes through the client's 429 retry handling, so a transient
// rate limit mid-collection does not restart the whole fetch.
//
// Termination relies on the server eventually omitting the next-page
// cursor. There is no page cap; a misbehaving server that always returns
// a cursor loops forever. This is a known limitation, left unbounded on
// purpose rather than silently truncating collections.
package pagination

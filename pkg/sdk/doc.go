// Package mapvista embeds the mapvista catalog, table engine and map
// projection in a Go program, without running the dashboard server.
//
// The client reads from the same backends as the server: the built-in
// sample catalog (default), an Elasticsearch-compatible search API, or
// RediSearch/Valkey-search.
//
//	client, _ := mapvista.New(ctx, mapvista.WithElastic("http://localhost:9200", "", ""))
//	defer client.Close()
//
//	indexes, _ := client.Indexes(ctx, "retail")
//	table, _ := client.Table(ctx, "store-analytics", mapvista.Query{
//	    Filters:   []mapvista.Filter{{Field: "category", Contains: "fashion"}},
//	    SortField: "revenue",
//	    Desc:      true,
//	})
//	points, _ := client.Points(ctx, "store-analytics")
package mapvista

// Package http provides the request and response helpers used by the
// introspection API.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//
//	name := req.RouteParam("name")    // chi URL parameter
//	dump := req.Bool("dump")          // ?dump, ?dump=1, ?dump=true
//	form := req.Query("format", "json")
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)               // raw JSON with status
//	res.Success(data)                 // 200 {"data": ...}
//	res.Error(400, "bad input")       // {"message": "bad input"}
//	res.NotFound()                    // 404 {"message": "Not found."}
//	res.ServerError()                 // 500 {"message": "Server Error."}
//	res.Text(200, dump)               // text/plain
package http

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lendhub/service-lending/internal/middleware"
	"github.com/lendhub/service-lending/internal/response"
)

// sharer returns the acting user id from the request header, answering 400
// when it is missing or malformed. Callers must return when ok is false.
func sharer(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetSharerID(c)
	if !ok {
		response.BadRequest(c, "missing or invalid "+middleware.SharerHeader+" header")
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses a uuid path parameter, answering 400 on garbage.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// pageParams extracts the optional from/size query parameters. Absence is
// meaningful (unpaged), so both come back as pointers; range validation is
// the pagination guard's concern, not the handler's.
func pageParams(c *gin.Context) (from, size *int, ok bool) {
	from, ok = intQuery(c, "from")
	if !ok {
		return nil, nil, false
	}
	size, ok = intQuery(c, "size")
	if !ok {
		return nil, nil, false
	}
	return from, size, true
}

func intQuery(c *gin.Context, name string) (*int, bool) {
	raw, present := c.GetQuery(name)
	if !present {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.BadRequest(c, "invalid "+name+" parameter")
		return nil, false
	}
	return &v, true
}

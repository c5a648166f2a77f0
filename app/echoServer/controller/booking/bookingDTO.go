package booking

import (
	"time"

	"shareit/model"
	bookingsvc "shareit/service/booking"
)

type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Resp is the booking output record with its item and booker embedded.
type Resp struct {
	ID     int64               `json:"id"`
	Start  time.Time           `json:"start"`
	End    time.Time           `json:"end"`
	Status model.BookingStatus `json:"status"`
	Booker UserRef             `json:"booker"`
	Item   ItemRef             `json:"item"`
}

func toResp(r *bookingsvc.Row) Resp {
	return Resp{
		ID:     r.ID,
		Start:  r.Start,
		End:    r.End,
		Status: r.Status,
		Booker: UserRef{ID: r.BookerID, Name: r.BookerName},
		Item:   ItemRef{ID: r.ItemID, Name: r.ItemName},
	}
}

func toResps(rows []bookingsvc.Row) []Resp {
	out := make([]Resp, 0, len(rows))
	for i := range rows {
		out = append(out, toResp(&rows[i]))
	}
	return out
}

package order

type Stage struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Complete bool   `json:"complete"`
	Active   bool   `json:"active"`
}

var stages = []Stage{
	{Key: "confirmed", Label: "Order Confirmed"},
	{Key: "processing", Label: "Processing"},
	{Key: "shipped", Label: "Shipped"},
}

// Track returns the three-stage progress for an order status.
func Track(status Status) []Stage {
	reached, active := 0, 0
	switch status {
	case StatusProcessing:
		reached, active = 1, 1
	case StatusShipped:
		reached, active = 2, 2
	case StatusDelivered:
		reached, active = 2, -1
	case StatusCancelled:
		reached, active = 0, -1
	}

	out := make([]Stage, len(stages))
	for i, st := range stages {
		st.Complete = i <= reached
		st.Active = i == active
		out[i] = st
	}
	return out
}

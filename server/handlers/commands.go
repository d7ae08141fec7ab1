package handlers

// Command is an inbound player action. The wire format is a JSON envelope
// whose "name" field selects the command; the remaining fields are the
// payload, validated before they reach the table.
type Command interface {
	Name() string
}

type Join struct {
	PlayerName string `json:"playerName"`
}

func (Join) Name() string { return "join" }

type Deal struct{}

func (Deal) Name() string { return "deal" }

type Bet struct {
	Amount int `json:"amount"`
}

func (Bet) Name() string { return "bet" }

type Call struct{}

func (Call) Name() string { return "call" }

type Raise struct {
	Amount int `json:"amount"`
}

func (Raise) Name() string { return "raise" }

type Fold struct{}

func (Fold) Name() string { return "fold" }

type Leave struct{}

func (Leave) Name() string { return "leave" }

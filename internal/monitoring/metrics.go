package monitoring

import "github.com/prometheus/client_golang/prometheus"

var (
	RoundsSettled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casino_rounds_settled_total",
			Help: "Settled game rounds by game and outcome",
		},
		[]string{"game", "outcome"},
	)

	PointsWagered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "casino_points_wagered_total",
			Help: "Total points wagered across all games",
		},
	)

	UsersRegistered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "casino_users_registered_total",
			Help: "Total accounts created",
		},
	)
)

func Init() {
	prometheus.MustRegister(RoundsSettled)
	prometheus.MustRegister(PointsWagered)
	prometheus.MustRegister(UsersRegistered)
}

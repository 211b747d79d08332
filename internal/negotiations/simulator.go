package negotiations

import (
	"fmt"
	"math"
	"time"
)

// ConvergenceThreshold is the price gap, in whole rupees, under which the two sides are
// considered to have agreed. It is shared by the simulator and StatusOf so the two
// checks cannot drift apart.
const ConvergenceThreshold = 1000

// DefaultConcessionRate is applied when an agent carries no concession rate.
const DefaultConcessionRate = 2.0

// Round cap and the stall-breaking escalation parameters. After ten rounds with the gap
// still above the stall threshold, both concession rates grow 10% per round up to 5%.
const (
	maxRounds         = 100
	stallRound        = 10
	stallGap          = 5000
	escalationFactor  = 1.1
	maxConcessionRate = 5.0
)

// SimulateNegotiation runs the alternating-offer bargaining protocol between a buyer
// and a seller and returns the full offer history. The run is synchronous and
// deterministic apart from offer timestamps; it never fails, and a run that exhausts
// the round cap simply ends without a converged offer.
func SimulateNegotiation(buyerAgent, sellerAgent Agent, initialBuyerPrice, initialSellerPrice int) []Offer {
	offers := make([]Offer, 0, 16)

	buyerOffer := float64(initialBuyerPrice)
	sellerOffer := float64(initialSellerPrice)
	round := 1

	buyerConcession := buyerAgent.ConcessionRate
	if buyerConcession == 0 {
		buyerConcession = DefaultConcessionRate
	}
	sellerConcession := sellerAgent.ConcessionRate
	if sellerConcession == 0 {
		sellerConcession = DefaultConcessionRate
	}

	offers = append(offers, Offer{
		ID:        fmt.Sprintf("offer_%d_buyer", round),
		AgentID:   buyerAgent.ID,
		AgentName: buyerAgent.Name,
		Price:     roundPrice(buyerOffer),
		Reasoning: []string{
			"Initial offer based on market rates and time constraints",
			fmt.Sprintf("Current offer: ₹%d", roundPrice(buyerOffer)),
		},
		Timestamp: time.Now(),
		Round:     round,
	})
	round++

	offers = append(offers, Offer{
		ID:        fmt.Sprintf("offer_%d_seller", round),
		AgentID:   sellerAgent.ID,
		AgentName: sellerAgent.Name,
		Price:     roundPrice(sellerOffer),
		Reasoning: []string{
			"Initial counter-offer considering fuel costs and driver hours",
			fmt.Sprintf("Current offer: ₹%d", roundPrice(sellerOffer)),
		},
		Timestamp: time.Now(),
		Round:     round,
	})
	round++

	for round <= maxRounds {
		if buyerOffer < sellerOffer {
			buyerOffer = math.Min(
				buyerOffer+(sellerOffer-buyerOffer)*(buyerConcession/100),
				float64(buyerAgent.MaxPrice),
			)
			offers = append(offers, Offer{
				ID:        fmt.Sprintf("offer_%d_buyer", round),
				AgentID:   buyerAgent.ID,
				AgentName: buyerAgent.Name,
				Price:     roundPrice(buyerOffer),
				Reasoning: []string{
					"Increasing offer due to time window constraints",
					fmt.Sprintf("Current offer: ₹%d", roundPrice(buyerOffer)),
				},
				Timestamp: time.Now(),
				Round:     round,
			})
		}

		if math.Abs(buyerOffer-sellerOffer) < ConvergenceThreshold {
			if buyerOffer < sellerOffer {
				finalPrice := roundPrice((buyerOffer + sellerOffer) / 2)
				offers = append(offers, convergedOffer(buyerAgent, finalPrice, round))
			}
			break
		}

		if sellerOffer > buyerOffer {
			sellerOffer = math.Max(
				sellerOffer-(sellerOffer-buyerOffer)*(sellerConcession/100),
				float64(sellerAgent.MinPrice),
			)
			offers = append(offers, Offer{
				ID:        fmt.Sprintf("offer_%d_seller", round),
				AgentID:   sellerAgent.ID,
				AgentName: sellerAgent.Name,
				Price:     roundPrice(sellerOffer),
				Reasoning: []string{
					"Reducing price due to fuel delta and driver hours",
					fmt.Sprintf("Current offer: ₹%d", roundPrice(sellerOffer)),
				},
				Timestamp: time.Now(),
				Round:     round,
			})
		}

		if math.Abs(buyerOffer-sellerOffer) < ConvergenceThreshold {
			finalPrice := roundPrice((buyerOffer + sellerOffer) / 2)
			offers = append(offers, convergedOffer(sellerAgent, finalPrice, round))
			break
		}

		if round > stallRound && math.Abs(buyerOffer-sellerOffer) > stallGap {
			buyerConcession = math.Min(buyerConcession*escalationFactor, maxConcessionRate)
			sellerConcession = math.Min(sellerConcession*escalationFactor, maxConcessionRate)
		}

		round++
	}

	return offers
}

func convergedOffer(agent Agent, finalPrice, round int) Offer {
	return Offer{
		ID:        fmt.Sprintf("offer_%d_converged", round),
		AgentID:   agent.ID,
		AgentName: agent.Name,
		Price:     finalPrice,
		Reasoning: []string{
			fmt.Sprintf("Agreement reached at ₹%d", finalPrice),
			"Price difference is acceptable",
		},
		Timestamp: time.Now(),
		Round:     round,
	}
}

// StatusOf derives a negotiation's status from its offer history. Terminal statuses
// pass through unchanged; an active negotiation is converged once its last two offers
// sit within the convergence threshold.
func StatusOf(negotiation *Negotiation) NegotiationStatus {
	if negotiation.Status != StatusActive {
		return negotiation.Status
	}

	if len(negotiation.Offers) < 2 {
		return StatusActive
	}

	last := negotiation.Offers[len(negotiation.Offers)-1]
	prev := negotiation.Offers[len(negotiation.Offers)-2]
	if abs(last.Price-prev.Price) < ConvergenceThreshold {
		return StatusConverged
	}

	return StatusActive
}

func roundPrice(price float64) int {
	return int(math.Round(price))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

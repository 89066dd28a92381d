package course

import "encoding/json"

// Demo returns a fixed espresso course. The mock provider serves it so the
// application can be tried without an API key.
func Demo() *Content {
	return &Content{
		Title:       "Pulling an Espresso Shot",
		Description: "Learn to dial in the grinder, dose, tamp and pull a balanced double espresso on the bar machine.",
		Content: []Step{
			{1, "Warm Up the Machine", "Switch the machine on at least 20 minutes before service. Lock an empty portafilter into the group head so it heats with the machine, and run 2 seconds of water through the group to flush it."},
			{2, "Dose the Coffee", "Place the dry portafilter on the scale and tare it. Grind 18 g of coffee into the basket, allowing a tolerance of 0.2 g. Level the bed by tapping the side of the portafilter gently with your palm."},
			{3, "Tamp Evenly", "Rest the portafilter on the edge of the counter. Press straight down with the tamper using about 15 kg of pressure until the coffee stops compressing, then give a slight twist to polish the surface. Wipe loose grounds off the rim."},
			{4, "Pull the Shot", "Flush the group for 2 seconds, lock in the portafilter and start the shot immediately with a warm cup on the scale. Aim for 36 g of liquid in 25 to 30 seconds."},
			{5, "Taste and Adjust", "Taste the shot. If it is sour and ran faster than 25 seconds, grind one step finer. If it is bitter and ran slower than 30 seconds, grind one step coarser. Change only the grind between shots."},
		},
		Quiz: []QuizQuestion{
			{
				Question:      "How much ground coffee goes into a double shot?",
				Options:       [4]string{"9 g", "14 g", "18 g", "25 g"},
				CorrectAnswer: 2,
				Explanation:   "A double shot uses 18 g of coffee, weighed on a tared scale.",
			},
			{
				Question:      "What is the target extraction time?",
				Options:       [4]string{"10 to 15 seconds", "25 to 30 seconds", "40 to 45 seconds", "60 seconds"},
				CorrectAnswer: 1,
				Explanation:   "36 g of espresso should take between 25 and 30 seconds.",
			},
			{
				Question:      "A shot tastes sour and ran in 20 seconds. What do you change?",
				Options:       [4]string{"Grind finer", "Grind coarser", "Use less coffee", "Tamp more lightly"},
				CorrectAnswer: 0,
				Explanation:   "A fast, sour shot is under-extracted, so the grind should be finer.",
			},
		},
	}
}

// DemoJSON returns Demo encoded as a provider response body.
func DemoJSON() json.RawMessage {
	raw, _ := json.Marshal(Demo())
	return raw
}

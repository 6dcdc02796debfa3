package catalog

import "github.com/okian/motorcast/internal/domain/model"

var defaultStyleClauses = map[model.LearningStyle]string{
	model.StyleVisual:      " Use picture cards and color cues to model each step.",
	model.StyleAuditory:    " Describe each step aloud and use songs or counting to pace the movements.",
	model.StyleKinesthetic: " Let the learner explore the materials by touch before starting structured practice.",
}

var defaultEntries = [SkillCount]Entry{
	PincerGrasp: {
		Label: "Pincer grasp",
		Archetype: Archetype{
			Type:        "Precision grip",
			Description: "Short, playful tasks that help {name} pick up small objects between thumb and index finger to refine {skill}.",
			Benefits:    []string{"Finger isolation", "Pencil-grip readiness", "Hand-eye coordination"},
		},
		Exercises: []Exercise{
			{
				Name:      "Pom-pom transfer",
				Duration:  "10 min",
				Materials: []string{"Pom-poms", "Tweezers", "Ice cube tray"},
				Steps: []string{
					"Place pom-poms in a bowl next to the tray",
					"Pick up one pom-pom at a time with the tweezers",
					"Drop each pom-pom into a separate compartment",
					"Count the filled compartments together",
				},
			},
			{
				Name:      "Coin slot bank",
				Duration:  "10 min",
				Materials: []string{"Plastic coins", "Piggy bank or box with a slot"},
				Steps: []string{
					"Spread the coins on the table",
					"Pick each coin up with thumb and index finger only",
					"Push the coin through the slot",
				},
			},
		},
	},
	ScissorCutting: {
		Label: "Scissor cutting",
		Archetype: Archetype{
			Type:        "Bilateral coordination",
			Description: "Guided cutting practice so {name} learns to open and close scissors while the helper hand turns the paper, building {skill}.",
			Benefits:    []string{"Hand strength", "Bilateral coordination", "Visual-motor control"},
		},
		Exercises: []Exercise{
			{
				Name:      "Snip the fringe",
				Duration:  "15 min",
				Materials: []string{"Child-safe scissors", "Paper strips"},
				Steps: []string{
					"Hold a paper strip with the helper hand",
					"Make single snips along the edge",
					"Glue the fringe onto a drawing",
				},
			},
			{
				Name:      "Cut along the road",
				Duration:  "15 min",
				Materials: []string{"Child-safe scissors", "Sheets with thick straight and curved lines"},
				Steps: []string{
					"Start with a straight thick line",
					"Cut slowly keeping the blades on the line",
					"Move on to a gentle curve",
					"Compare the cut edge with the printed line",
				},
			},
		},
	},
	LineTracing: {
		Label: "Line tracing",
		Archetype: Archetype{
			Type:        "Graphomotor control",
			Description: "Tracing routines that help {name} control pressure and direction, strengthening {skill} ahead of handwriting.",
			Benefits:    []string{"Pencil control", "Directional awareness", "Pre-writing skills"},
		},
		Exercises: []Exercise{
			{
				Name:      "Rainbow tracing",
				Duration:  "10 min",
				Materials: []string{"Crayons", "Worksheet with dotted shapes"},
				Steps: []string{
					"Trace the dotted shape with one color",
					"Trace it again with a second color on top",
					"Repeat until the shape is rainbow colored",
				},
			},
			{
				Name:      "Sand tray paths",
				Duration:  "10 min",
				Materials: []string{"Tray with sand or salt", "Path cards"},
				Steps: []string{
					"Show a path card",
					"Copy the path in the sand with the index finger",
					"Smooth the sand and try the next card",
				},
			},
		},
	},
	BeadThreading: {
		Label: "Bead threading",
		Archetype: Archetype{
			Type:        "Eye-hand coordination",
			Description: "Threading sequences that ask {name} to guide a lace through small openings, improving {skill}.",
			Benefits:    []string{"Eye-hand coordination", "Two-handed control", "Sequencing"},
		},
		Exercises: []Exercise{
			{
				Name:      "Pattern necklace",
				Duration:  "15 min",
				Materials: []string{"Large beads", "Lace with a stiff tip", "Pattern card"},
				Steps: []string{
					"Read the color pattern on the card",
					"Thread beads following the pattern",
					"Tie the necklace with help",
				},
			},
			{
				Name:      "Pasta garland",
				Duration:  "15 min",
				Materials: []string{"Tube pasta", "Yarn with taped end"},
				Steps: []string{
					"Hold the yarn near the taped end",
					"Push a pasta tube onto the yarn",
					"Slide it to the end and add the next one",
				},
			},
		},
	},
	Buttoning: {
		Label: "Buttoning",
		Archetype: Archetype{
			Type:        "Self-care dexterity",
			Description: "Everyday dressing practice that gives {name} repeated chances to push buttons through holes, building {skill}.",
			Benefits:    []string{"Independence in dressing", "Finger strength", "Problem solving"},
		},
		Exercises: []Exercise{
			{
				Name:      "Button board",
				Duration:  "10 min",
				Materials: []string{"Felt board with large buttons and slits"},
				Steps: []string{
					"Start with the largest button",
					"Pinch the button and push it halfway through the slit",
					"Pull it through from the other side",
					"Unbutton and repeat with a smaller button",
				},
			},
			{
				Name:      "Dress the teddy",
				Duration:  "15 min",
				Materials: []string{"Teddy bear", "Doll shirt with buttons"},
				Steps: []string{
					"Put the shirt on the teddy",
					"Button it from bottom to top",
					"Unbutton it to undress the teddy",
				},
			},
		},
	},
	Coloring: {
		Label: "Coloring within lines",
		Archetype: Archetype{
			Type:        "Visual-motor precision",
			Description: "Coloring tasks with clear borders that help {name} stop and change direction on purpose, refining {skill}.",
			Benefits:    []string{"Stroke control", "Attention to detail", "Grip endurance"},
		},
		Exercises: []Exercise{
			{
				Name:      "Bold border coloring",
				Duration:  "15 min",
				Materials: []string{"Coloring pages with thick outlines", "Short crayons"},
				Steps: []string{
					"Outline the inside edge of a shape first",
					"Fill the shape with short strokes",
					"Check for gaps and color outside lines",
				},
			},
			{
				Name:      "Mosaic stickers",
				Duration:  "10 min",
				Materials: []string{"Small dot stickers", "Outline drawing"},
				Steps: []string{
					"Peel one sticker at a time",
					"Place stickers inside the outline",
					"Fill the whole shape without crossing the line",
				},
			},
		},
	},
	BlockStacking: {
		Label: "Block stacking",
		Archetype: Archetype{
			Type:        "Graded force control",
			Description: "Building challenges where {name} places blocks gently and precisely, developing {skill}.",
			Benefits:    []string{"Graded release", "Spatial reasoning", "Wrist stability"},
		},
		Exercises: []Exercise{
			{
				Name:      "Tower challenge",
				Duration:  "10 min",
				Materials: []string{"Small wooden blocks"},
				Steps: []string{
					"Stack blocks one on top of another",
					"Count how high the tower gets before it falls",
					"Try to beat the previous height",
				},
			},
			{
				Name:      "Copy the model",
				Duration:  "15 min",
				Materials: []string{"Blocks", "Picture cards of simple structures"},
				Steps: []string{
					"Look at the picture card",
					"Build the same structure",
					"Compare the build with the card",
				},
			},
		},
	},
	ClayModeling: {
		Label: "Clay modeling",
		Archetype: Archetype{
			Type:        "Hand strengthening",
			Description: "Modeling activities that let {name} squeeze, roll and pinch, building the strength behind {skill}.",
			Benefits:    []string{"Intrinsic hand strength", "Sensory feedback", "Creativity"},
		},
		Exercises: []Exercise{
			{
				Name:      "Snake and ball rolling",
				Duration:  "15 min",
				Materials: []string{"Modeling clay"},
				Steps: []string{
					"Roll a ball between both palms",
					"Roll a long snake on the table",
					"Pinch the snake into small pieces",
				},
			},
			{
				Name:      "Hidden treasures",
				Duration:  "10 min",
				Materials: []string{"Therapy putty", "Small beads"},
				Steps: []string{
					"Hide beads inside the putty",
					"Pull and pinch the putty to find each bead",
					"Count the treasures found",
				},
			},
		},
	},
}

package caption

import "github.com/menta2k/moodmeme/pkg/emotion"

func defaultCorpus() map[emotion.Label]Pools {
	return map[emotion.Label]Pools{
		emotion.Happy: {
			Simple: []string{
				"Best mood ever today! ✨",
				"So happy I could fly! 🚀",
				"Can't stop smiling 😄",
				"The whole world is mine! 🌍",
				"Spreading the happy virus~ 🦠💕",
				"What a great day! ☀️",
				"The smile just happens! 😆",
				"Today is my lucky day! 🍀",
			},
			Contextual: []string{
				"The AI read my mood perfectly! 😊",
				"This face is pure happiness! ✨",
				"Emotion analysis: 100% happy! 📊",
				"Who knew a smile could look this good! 💫",
			},
			Trendy: []string{
				"Happiness level: MAX! 🔥",
				"Good mood, certified! 📸",
				"Energy is unreal today! ⚡",
				"Happy vibe check! ✅",
			},
		},
		emotion.Sad: {
			Simple: []string{
				"Monday again... 😢",
				"I desperately need coffee... ☕",
				"Hang in there, me... fighting! 💪",
				"It's okay, this too shall pass 🌈",
				"Sadness is part of me too 💙",
				"Rainy day feelings... 🌧️",
				"It's just one of those days 😔",
				"Only sad for a moment 💭",
			},
			Contextual: []string{
				"Even the AI knows how I feel... 😢",
				"Everything is written on this face 💔",
				"My emotions are all over my face 😞",
				"Sad feelings matter too 🥺",
			},
			Trendy: []string{
				"Mood status: downloading... 📥",
				"Sad mode ON 😭",
				"Mental battery needs a recharge! 🔋",
				"Healing time required 🛀",
			},
		},
		emotion.Surprised: {
			Simple: []string{
				"Wait, what is this?! 😲",
				"Something unexpected happened! 🎯",
				"Whoa! My heart is racing! 💓",
				"No way, I can't believe it! 🤯",
				"What a plot twist...! 🎭",
				"Surprise! 🎉",
				"Totally shocked! ⚡",
				"How is this possible! 😱",
			},
			Contextual: []string{
				"The AI caught my surprised face! 😲",
				"Captured the moment of shock! 📸",
				"This face says it all! 😯",
				"Surprise index measured! 📊",
			},
			Trendy: []string{
				"Shock level: over 9000! 💥",
				"Unexpected situation detected! 🚨",
				"Surprise attack! ⚔️",
				"Shock and awe! 🌪️",
			},
		},
		emotion.Angry: {
			Simple: []string{
				"Angry, but holding it in... 😤",
				"Deep breath... in~ out~ 🧘‍♂️",
				"Calm down, just calm down ✋",
				"Finding my inner peace... 🧘‍♀️",
				"Anger gives you wrinkles... 😮‍💨",
				"Anger control mode ON 🔥➡️❄️",
				"Wait, let me settle my mind 🙏",
				"Anger is poison, let it go ☮️",
			},
			Contextual: []string{
				"The AI even read my anger... 😠",
				"This face explains everything 💢",
				"A moment that needs emotion control! 🎯",
				"Even an angry face becomes data 📊",
			},
			Trendy: []string{
				"Rage gauge: danger zone! ⚠️",
				"Angry mode detected! 🔴",
				"Need a mental brake! 🛑",
				"I need a calming potion! 🧪",
			},
		},
		emotion.Neutral: {
			Simple: []string{
				"Just another day 📅",
				"A snapshot of ordinary life 📸",
				"Poker face 😐",
				"No-feelings mode today 💤",
				"Calm mind, quiet sea 🌊",
				"Feelings? What are those? 🤖",
				"Just one of those moments ⏰",
				"Default mode 😑",
			},
			Contextual: []string{
				"Even the AI reads my blank face 😐",
				"No expression is an expression too! 🤖",
				"The power of a neutral face! ⚖️",
				"Blankness, perfectly analyzed! 📊",
			},
			Trendy: []string{
				"Mood status: neutral 🟨",
				"Poker face master! 👤",
				"Emotion saving mode ON 🔋",
				"Cool vibe check! 😎",
			},
		},
		emotion.Confused: {
			Simple: []string{
				"Something feels off...? 🤔",
				"I don't get it... 🧩",
				"So confused... help 🆘",
				"Only more questions... ❓❓❓",
				"My head is spinning... 🌪️",
				"Let's sort this out 📝",
				"No idea what's going on 🤷‍♂️",
				"Chaos of confusion... 🌀",
			},
			Contextual: []string{
				"The AI sensed my confusion too! 🤔",
				"A perfectly confused face! 😵‍💫",
				"A complicated mind, right on my face! 🧠",
				"Confusion index measured! 📊",
			},
			Trendy: []string{
				"Confusion status: loading... ⏳",
				"Brain freeze mode ON 🧠❌",
				"Cannot compute! 🚫",
				"Mental debugging required! 🔧",
			},
		},
		emotion.Excited: {
			Simple: []string{
				"Wow! So excited! 🎉",
				"Energy MAX! 🚀",
				"Too hyped to sleep! ⚡",
				"Where do I put all this energy? 💥",
				"Excitement explosion! 🎆",
				"Adrenaline rush! ⚡",
				"Totally hyped! 🔥",
				"Let's gooo! 🎊",
			},
			Contextual: []string{
				"The AI nailed my excitement! 🤩",
				"This hype is bursting out of the screen! 💥",
				"Energy level measured! ⚡",
				"Spreading the excitement virus! 🦠",
			},
			Trendy: []string{
				"Hype gauge: overflow! 📊",
				"Hyper mode activated! 🚀",
				"Like 1000 energy drinks! ⚡",
				"Excitement cheat code on! 🎮",
			},
		},
		emotion.Calm: {
			Simple: []string{
				"My mind is at peace... 🧘‍♂️",
				"Feeling like a still lake 🏞️",
				"A peaceful moment ☮️",
				"Nice and easy... 🍃",
				"Feeling my inner peace 💆‍♂️",
				"Meditation mode ON 🕯️",
				"Me, in the quiet 🌸",
				"Keeping my composure ⚖️",
			},
			Contextual: []string{
				"Even the AI feels my calm 🧘‍♂️",
				"Peace radiates from this face ☮️",
				"Stable emotion state detected! 📊",
				"Calm vibe measured! 🌊",
			},
			Trendy: []string{
				"Healing mode ON 🌿",
				"Mindfulness achieved! 🎯",
				"Calm index: max level! 📊",
				"Zen mode activated! 🧘‍♂️",
			},
		},
	}
}

var timeTexts = map[string][]string{
	Morning:   {"Good morning! ☀️", "How's the morning mood?", "A brand new day! 🌅"},
	Afternoon: {"Had lunch yet? 🍽️", "Afternoon chill", "How's the midday mood?"},
	Evening:   {"Evening time 🌆", "You worked hard today!", "How was your day?"},
	Night:     {"Good night! 🌙", "What are you doing up so late?", "Last one before bed!"},
}

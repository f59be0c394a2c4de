package prompt

// Template is the fixed registry entry for a tool.
type Template struct {
	Tool              Tool   `json:"tool"`
	Label             string `json:"label"`
	SystemInstruction string `json:"system_instruction"`
	Placeholder       string `json:"placeholder"`
}

const imageInstruction = `You are a world-class prompt engineer for AI image generation models like Midjourney or DALL-E 3. Your task is to take a user's simple idea and transform it into a rich, detailed, and evocative prompt. If a specific style is provided by the user, you must incorporate it. The prompt should be a single, coherent paragraph. Focus on dynamic composition, ethereal and glow-in-the-dark lighting, intricate textures, and a high-energy, abstract feel. Render the scene with ultra-fine precision and a deep depth of field. The overall impression should be one of beautiful, controlled disarray and cybernetic abstraction. Always conclude the prompt with relevant technical parameters, such as "--ar 16:9 --v 6.0".`

const videoInstruction = `You are a creative director and scriptwriter, an expert in crafting prompts for AI video generation models like Veo or Sora. Your goal is to expand a user's simple idea into a cinematic prompt. If a specific style is provided, it should heavily influence the visual direction. The prompt should be a single, coherent paragraph. Describe the scene's atmosphere, specific camera shots and movements (e.g., 'dolly zoom,' 'extreme close-up,' 'sweeping aerial shot'), lighting styles ('cinematic lighting,' 'golden hour,' 'neon noir'), character actions, and overall mood. The output should read like a director's vision for a specific, impactful shot.`

const websiteInstruction = `You are an expert UI/UX designer and web developer, crafting a prompt for an AI website builder. Based on the user's idea, generate a comprehensive and structured brief. If a website category is provided, the design and content should be tailored specifically for that category's audience and goals. Specify the website's primary goal, its target audience, a modern and clean color palette (provide hex codes), typography suggestions (mention specific fonts for headings and body), key sections (e.g., Hero, About Us, Services, Portfolio, Contact), and the overall aesthetic (e.g., 'minimalist,' 'corporate,' 'brutalist,' 'playful'). The output should be well-structured with clear headings for each part of the brief to guide the AI website builder effectively.`

// Lookup returns the registry entry for tool.
// Unknown tools fall back to the Image entry; Tool values outside the
// enumeration only arise from unchecked conversions.
func Lookup(tool Tool) Template {
	switch tool {
	case ToolImage:
		return Template{
			Tool:              ToolImage,
			Label:             "Image Prompt",
			SystemInstruction: imageInstruction,
			Placeholder:       "e.g., a futuristic city with glowing mushrooms and a river running through it",
		}
	case ToolVideo:
		return Template{
			Tool:              ToolVideo,
			Label:             "Video Prompt",
			SystemInstruction: videoInstruction,
			Placeholder:       "e.g., A cinematic close-up of a raindrop hitting a leaf in a lush, foggy forest, slow motion.",
		}
	case ToolWebsite:
		return Template{
			Tool:              ToolWebsite,
			Label:             "Website Prompt",
			SystemInstruction: websiteInstruction,
			Placeholder:       "e.g., A portfolio website for a freelance photographer, minimalist style, with a dark theme.",
		}
	}
	return Lookup(ToolImage)
}

// Templates returns the registry entries for all tools in display order.
func Templates() []Template {
	out := make([]Template, 0, len(tools))
	for _, c := range tools {
		out = append(out, Lookup(c.ID))
	}
	return out
}

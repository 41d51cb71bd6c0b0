package fallback

import "github.com/jonathan/roadmap-planner/internal/types"

// palette holds the gradient classes applied to phases in order.
var palette = []string{
	"from-blue-500 to-cyan-500",
	"from-purple-500 to-pink-500",
	"from-green-500 to-teal-500",
	"from-orange-500 to-red-500",
}

// PhaseColor returns the palette entry for the phase at index i, cycling when
// there are more phases than colours.
func PhaseColor(i int) string {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

func res(id, title, url, category, description string) types.Resource {
	return types.Resource{ID: id, Title: title, URL: url, Category: category, Description: description}
}

func badge(id, title, description, icon string, points int) types.Badge {
	return types.Badge{ID: id, Title: title, Description: description, Icon: icon, Points: points}
}

var coreResources = []types.Resource{
	res("res-core-1", "GitHub", "https://github.com/", "Development", "Version control and portfolio hosting"),
	res("res-core-2", "LinkedIn", "https://linkedin.com/", "Career", "Professional networking platform"),
	res("res-core-3", "LeetCode", "https://leetcode.com/", "Coding Practice", "Essential for technical interview preparation"),
}

var coreBadges = []types.Badge{
	badge("badge-core-1", "Profile Complete", "Completed GitHub and LinkedIn profiles", "User", 50),
	badge("badge-core-2", "First Project", "Built and deployed your first project", "Rocket", 100),
	badge("badge-core-3", "Resume Ready", "Created professional resume", "FileText", 75),
}

var closingResources = []types.Resource{
	res("res-career-1", "Pramp", "https://www.pramp.com/", "Career", "Free mock interviews with peers"),
	res("res-career-2", "STAR Technique Guide", "https://www.indeed.com/career-advice/interviewing/how-to-use-the-star-method", "Career", "Behavioral interview technique"),
	res("res-career-3", "Resume Templates", "https://www.canva.com/resumes/", "Career", "Professional resume templates"),
	res("res-career-4", "Cracking the Coding Interview", "https://www.crackingthecodinginterview.com/", "Career", "Essential interview preparation book"),
	res("res-code-1", "HackerRank", "https://www.hackerrank.com/", "Coding Practice", "Coding challenges and skill assessment"),
	res("res-code-2", "CodeSignal", "https://codesignal.com/", "Coding Practice", "Technical interview practice"),
	res("res-code-3", "AlgoExpert", "https://www.algoexpert.io/", "Coding Practice", "Curated algorithm questions"),
	res("res-job-1", "Simplify", "https://simplify.jobs/", "Job Boards", "Job search built for students"),
	res("res-job-2", "Wellfound", "https://wellfound.com/", "Job Boards", "Startup jobs and internships"),
	res("res-job-3", "Glassdoor", "https://www.glassdoor.com/", "Job Boards", "Company reviews and salary information"),
}

var closingBadges = []types.Badge{
	badge("badge-code-1", "Code Warrior", "Solved 25 coding problems", "Code", 100),
	badge("badge-code-2", "Algorithm Master", "Solved 100 coding problems", "Zap", 200),
	badge("badge-code-3", "Git Expert", "Made 100 commits in a month", "GitBranch", 75),
	badge("badge-network-1", "Network Builder", "Connected with 50 professionals", "Users", 100),
	badge("badge-network-2", "Community Member", "Joined 3 tech communities", "Users", 75),
	badge("badge-apply-1", "Application Sent", "Applied to your first internship", "Send", 100),
	badge("badge-apply-2", "Interview Ready", "Completed 5 mock interviews", "MessageCircle", 150),
	badge("badge-apply-3", "Offer Received", "Received your first internship offer", "Award", 500),
}

// company describes the application track for one preferred employer.
type company struct {
	key      string
	name     string
	task     string
	resource types.Resource
	badge    *types.Badge
}

func companyBadge(b types.Badge) *types.Badge { return &b }

var companies = []company{
	{
		key:      "google",
		name:     "Google",
		task:     "Apply to the Google STEP internship program",
		resource: res("res-company-google", "Google STEP Program", "https://buildyourfuture.withgoogle.com/programs/step/", "Internships", "Google's internship for first and second-year students"),
		badge:    companyBadge(badge("badge-company-google", "Google Applicant", "Applied to Google STEP program", "Building", 200)),
	},
	{
		key:      "microsoft",
		name:     "Microsoft",
		task:     "Apply to the Microsoft Explore program",
		resource: res("res-company-microsoft", "Microsoft Explore Program", "https://careers.microsoft.com/students/us/en/usexploreprogram", "Internships", "Microsoft's program for early-career students"),
		badge:    companyBadge(badge("badge-company-microsoft", "Microsoft Explorer", "Applied to Microsoft Explore program", "Building", 200)),
	},
	{
		key:      "meta",
		name:     "Meta",
		task:     "Apply to Meta University and Meta internships",
		resource: res("res-company-meta", "Meta University", "https://www.metacareers.com/students/", "Internships", "Meta's internship and training programs"),
	},
	{
		key:      "amazon",
		name:     "Amazon",
		task:     "Apply to Amazon student internship programs",
		resource: res("res-company-amazon", "Amazon Student Programs", "https://www.amazon.jobs/en/teams/internships-for-students", "Internships", "Amazon internships for students"),
	},
	{
		key:      "apple",
		name:     "Apple",
		task:     "Apply to Apple student internships",
		resource: res("res-company-apple", "Apple Students", "https://www.apple.com/careers/us/students.html", "Internships", "Apple internships and student roles"),
	},
	{
		key:      "rbc",
		name:     "RBC",
		task:     "Apply to the RBC Amplify program",
		resource: res("res-company-rbc", "RBC Amplify Program", "https://jobs.rbc.com/ca/en/amplify", "Internships", "RBC's technology internship program"),
	},
	{
		key:      "shopify",
		name:     "Shopify",
		task:     "Apply to Shopify Dev Degree and engineering internships",
		resource: res("res-company-shopify", "Shopify Dev Degree", "https://devdegree.ca/", "Internships", "Shopify's work-integrated learning program"),
	},
	{
		key:      "startups",
		name:     "Startups",
		task:     "Apply to startup internships through Y Combinator and Wellfound",
		resource: res("res-company-startups", "Work at a Startup", "https://www.workatastartup.com/", "Internships", "Y Combinator's startup job board"),
	},
}
